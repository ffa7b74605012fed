package resume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtract_personalInfo(t *testing.T) {
	text := "Jane Doe\njane.doe@example.com\n555-123-4567\n"

	got := NewRegexExtractor().Extract(text)

	assert.Equal(t, "Jane Doe", got.PersonalInfo.Name)
	assert.Equal(t, "jane.doe@example.com", got.PersonalInfo.Email)
	assert.Equal(t, "555-123-4567", got.PersonalInfo.Phone)
}

func TestExtract_skillsMatchVocabularyOrder(t *testing.T) {
	text := "Proficient with Python, React and SQL on Linux."

	got := NewRegexExtractor().Extract(text)

	assert.Equal(t, []string{"Python", "React", "SQL", "Linux"}, got.Skills)
}

func TestExtract_skillsAbsentFromText(t *testing.T) {
	got := NewRegexExtractor().Extract("I enjoy hiking and baking bread.")
	assert.Empty(t, got.Skills)
}

func TestExtract_experienceEntries(t *testing.T) {
	text := "Experience\nSoftware Engineer at Acme Corp 2019 - 2023\nDeveloper at Beta Labs 2023 - present\n\nother"

	got := NewRegexExtractor().Extract(text)

	if assert.Len(t, got.Experience, 2) {
		first := got.Experience[0]
		assert.Equal(t, "Software Engineer", first.Title)
		assert.Equal(t, "Acme Corp", first.Company)
		assert.Equal(t, 2019, first.StartDate.Year())
		if assert.NotNil(t, first.EndDate) {
			assert.Equal(t, 2023, first.EndDate.Year())
		}
		assert.False(t, first.Current)

		second := got.Experience[1]
		assert.Equal(t, "Developer", second.Title)
		assert.Equal(t, "Beta Labs", second.Company)
		assert.True(t, second.Current)
		assert.Nil(t, second.EndDate)
	}
}

func TestExtract_educationEntries(t *testing.T) {
	text := "Education\nBachelor of Science from State University 2018\n\nother"

	got := NewRegexExtractor().Extract(text)

	if assert.Len(t, got.Education, 1) {
		entry := got.Education[0]
		assert.Equal(t, "Bachelor in Science", entry.Degree)
		assert.Equal(t, "State University", entry.Institution)
		if assert.NotNil(t, entry.EndDate) {
			assert.Equal(t, time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC), *entry.EndDate)
		}
	}
}

func TestExtract_summary(t *testing.T) {
	text := "Objective Seeking a backend engineering role.\nSkills follow below"

	got := NewRegexExtractor().Extract(text)

	assert.Equal(t, "Seeking a backend engineering role.", got.Summary)
}

func TestExtract_garbageDegradesToEmpty(t *testing.T) {
	got := NewRegexExtractor().Extract("\x00\x01 ???")

	assert.Empty(t, got.Skills)
	assert.Empty(t, got.Experience)
	assert.Empty(t, got.Education)
	assert.Empty(t, got.Summary)
}
