// Package resume provides the HTTP handler that parses uploaded resumes
// into structured profile data and a candidate score.
package resume

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/resume"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

var allowedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// ResumeController handles resume upload and parsing endpoints
type ResumeController struct {
	DB        *database.DBinstanceStruct
	Extractor resume.Extractor
}

// NewResumeController creates a new instance of ResumeController
func NewResumeController(db *database.DBinstanceStruct, extractor resume.Extractor) *ResumeController {
	return &ResumeController{
		DB:        db,
		Extractor: extractor,
	}
}

// ParseHandler accepts a resume file, extracts structured profile fields
// from its text, scores the candidate and persists everything on the
// caller's profile.
// @Summary Upload and parse resume file
// @Description Only job seeker user can access this endpoint. Only files smaller than 10 MB with .pdf, .doc, .docx or .txt extension are permitted
// @Tags Resume
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param resume formData file true "Upload your resume file"
// @Success 200 {object} map[string]interface{} "Parsed resume data and candidate score"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as job seeker"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /resume/parse [post]
func (rc *ResumeController) ParseHandler(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	rawFile, err := c.FormFile("resume")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !extensionAllowed(extension) {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return
	}

	file := model.File{
		Content:   fileBytes,
		Extension: extension,
	}
	if err := rc.DB.Create(&file).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store resume: %s", err.Error()),
		})
		return
	}

	parsed := rc.Extractor.Extract(plainText(fileBytes))
	score := resume.Score(parsed)

	user.ResumeURL = fmt.Sprintf("/api/v1/file/%d", file.ID)
	user.Skills = parsed.Skills
	user.Experience = parsed.Experience
	user.Education = parsed.Education
	user.Summary = parsed.Summary
	user.CandidateScore = score
	if parsed.PersonalInfo.Phone != "" && user.Phone == nil {
		user.Phone = &parsed.PersonalInfo.Phone
	}
	user.UpdatedAt = time.Now()

	if err := rc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parsed":          parsed,
		"candidate_score": score,
		"resume_url":      user.ResumeURL,
	})
}

func extensionAllowed(ext string) bool {
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// plainText salvages readable text from the raw upload. Binary formats come
// through degraded, which the extractor tolerates.
func plainText(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, r := range string(data) {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
