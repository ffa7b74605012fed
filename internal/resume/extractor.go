// Package resume turns raw resume text into structured candidate data and
// scores it. Extraction sits behind the Extractor interface so the regex
// heuristics can be swapped for a smarter implementation without touching
// the scorer or the application pipeline.
package resume

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/riyanshibariyaa/jp5/internal/model"
)

// PersonalInfo is the contact data pulled from the top of a resume.
type PersonalInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Parsed is the structured output of resume extraction.
type Parsed struct {
	PersonalInfo PersonalInfo            `json:"personal_info"`
	Skills       []string                `json:"skills"`
	Experience   []model.ExperienceEntry `json:"experience"`
	Education    []model.EducationEntry  `json:"education"`
	Summary      string                  `json:"summary,omitempty"`
}

// Extractor turns resume plain text into structured fields. Low quality text
// degrades to empty slices, it never fails.
type Extractor interface {
	Extract(text string) Parsed
}

// skillVocabulary is the fixed keyword set matched case-insensitively as
// substrings anywhere in the text. No synonym or stemming logic.
var skillVocabulary = []string{
	"JavaScript", "Python", "Java", "React", "Node.js", "HTML", "CSS", "SQL",
	"MongoDB", "AWS", "Docker", "Git", "TypeScript", "Angular", "Vue.js",
	"PHP", "C++", "C#", "Ruby", "Go", "Kubernetes", "Jenkins", "Linux",
	"Windows", "MacOS", "Figma", "Photoshop", "Illustrator", "Sketch",
	"InDesign", "After Effects", "Premiere Pro", "Excel", "PowerPoint",
	"Word", "Salesforce", "HubSpot", "Google Analytics", "SEO", "SEM",
	"Social Media Marketing", "Content Marketing", "Email Marketing",
	"Project Management", "Agile", "Scrum", "Jira", "Trello", "Slack",
	"Microsoft Teams", "Zoom",
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)

	experienceSection = regexp.MustCompile(`(?is)(?:experience|work history|employment)(.*?)(?:education|skills|\n\n)`)
	educationSection  = regexp.MustCompile(`(?is)(?:education|academic background)(.*?)(?:experience|skills|\n\n)`)
	summarySection    = regexp.MustCompile(`(?is)(?:summary|objective|profile)(.*?)(?:\n\n|\n[A-Z])`)

	// "<title> at/@ <company> <year>-<year|present>"
	jobPattern = regexp.MustCompile(`(?i)([A-Za-z\s]+)\s*(?:at|@)\s*([A-Za-z\s&.,]+?)\s*(\d{4})\s*-\s*(\d{4}|present)`)
	// "<degree> in/of <field> from/at <institution> <year>"
	eduPattern = regexp.MustCompile(`(?i)([A-Za-z\s]+)\s+(?:in|of)\s+([A-Za-z\s]+?)\s+(?:from|at)\s+([A-Za-z\s&.,]+?)\s*(\d{4})`)
)

// RegexExtractor is the heuristic pattern-matching implementation of Extractor.
type RegexExtractor struct{}

// NewRegexExtractor returns the default heuristic extractor.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract parses resume plain text into structured candidate data.
func (e *RegexExtractor) Extract(text string) Parsed {
	return Parsed{
		PersonalInfo: extractPersonalInfo(text),
		Skills:       extractSkills(text),
		Experience:   extractExperience(text),
		Education:    extractEducation(text),
		Summary:      extractSummary(text),
	}
}

func extractPersonalInfo(text string) PersonalInfo {
	info := PersonalInfo{
		Email: emailPattern.FindString(text),
		Phone: phonePattern.FindString(text),
	}

	// Candidate name defaults to the first non-empty line of the document.
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			info.Name = trimmed
			break
		}
	}
	return info
}

func extractSkills(text string) []string {
	lower := strings.ToLower(text)

	found := []string{}
	seen := map[string]bool{}
	for _, skill := range skillVocabulary {
		if seen[skill] {
			continue
		}
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
			seen[skill] = true
		}
	}
	return found
}

func extractExperience(text string) []model.ExperienceEntry {
	section := text
	if m := experienceSection.FindStringSubmatch(text); m != nil {
		section = m[1]
	}

	entries := []model.ExperienceEntry{}
	for _, m := range jobPattern.FindAllStringSubmatch(section, -1) {
		startYear, err := strconv.Atoi(m[3])
		if err != nil {
			// Unparseable dates drop the span entirely.
			continue
		}
		entry := model.ExperienceEntry{
			Title:     strings.TrimSpace(m[1]),
			Company:   strings.TrimSpace(m[2]),
			StartDate: yearDate(startYear),
		}
		if strings.EqualFold(m[4], "present") {
			entry.Current = true
		} else {
			endYear, err := strconv.Atoi(m[4])
			if err != nil {
				continue
			}
			end := yearDate(endYear)
			entry.EndDate = &end
		}
		entries = append(entries, entry)
	}
	return entries
}

func extractEducation(text string) []model.EducationEntry {
	section := text
	if m := educationSection.FindStringSubmatch(text); m != nil {
		section = m[1]
	}

	entries := []model.EducationEntry{}
	for _, m := range eduPattern.FindAllStringSubmatch(section, -1) {
		year, err := strconv.Atoi(m[4])
		if err != nil {
			continue
		}
		end := yearDate(year)
		entries = append(entries, model.EducationEntry{
			Degree:      strings.TrimSpace(m[1]) + " in " + strings.TrimSpace(m[2]),
			Institution: strings.TrimSpace(m[3]),
			EndDate:     &end,
		})
	}
	return entries
}

func extractSummary(text string) string {
	if m := summarySection.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func yearDate(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
