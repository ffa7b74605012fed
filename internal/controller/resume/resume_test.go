package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"github.com/riyanshibariyaa/jp5/internal/auth"
	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/middleware"
	"github.com/riyanshibariyaa/jp5/internal/model"
	parser "github.com/riyanshibariyaa/jp5/internal/resume"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

const sampleResume = `Jane Doe
jane.doe@example.com
555-123-4567

Objective Seeking a backend engineering role on a platform team.

Skills
Go, PostgreSQL, Docker, Linux

Experience
Software Engineer at Acme Corp 2019 - 2023
Backend Developer at Beta Labs 2023 - present

Education
Bachelor of Science from State University 2018

References available upon request.
`

func newRouter(limit int64) *gin.Engine {
	r := gin.Default()
	rc := NewResumeController(testDB, parser.NewRegexExtractor())
	r.POST("/resume/parse",
		middleware.RequireAuth(testDB),
		middleware.CheckRole(model.RoleJobSeeker),
		middleware.SizeLimit(limit),
		rc.ParseHandler)
	return r
}

func uploadResume(t *testing.T, r *gin.Engine, token, filename, content string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("resume", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/resume/parse", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestParse_updatesProfile(t *testing.T) {
	r := newRouter(10 << 20)
	token, err := auth.GetAccessToken(database.TestSeeker2.Email, testDB)
	assert.NoError(t, err)

	rec, resp := uploadResume(t, r, token, "resume.txt", sampleResume)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Greater(t, resp["candidate_score"].(float64), float64(0))
	assert.Contains(t, resp["resume_url"].(string), "/api/v1/file/")

	parsed := resp["parsed"].(map[string]interface{})
	personal := parsed["personal_info"].(map[string]interface{})
	assert.Equal(t, "jane.doe@example.com", personal["email"])

	var user model.User
	assert.NoError(t, testDB.Where("id = ?", database.TestSeeker2.ID).First(&user).Error)
	assert.Contains(t, []string(user.Skills), "Go")
	assert.NotEmpty(t, user.Experience)
	assert.NotEmpty(t, user.Education)
	assert.Equal(t, int(resp["candidate_score"].(float64)), user.CandidateScore)
	assert.Equal(t, resp["resume_url"], user.ResumeURL)
}

func TestParse_storesFileForDownload(t *testing.T) {
	r := newRouter(10 << 20)
	token, err := auth.GetAccessToken(database.TestSeeker2.Email, testDB)
	assert.NoError(t, err)

	rec, resp := uploadResume(t, r, token, "resume.txt", sampleResume)
	assert.Equal(t, http.StatusOK, rec.Code)

	url := resp["resume_url"].(string)
	id := url[strings.LastIndex(url, "/")+1:]

	var file model.File
	assert.NoError(t, testDB.Where("id = ?", id).First(&file).Error)
	assert.Equal(t, ".txt", file.Extension)
	assert.Equal(t, sampleResume, string(file.Content))
}

func TestParse_unsupportedExtension(t *testing.T) {
	r := newRouter(10 << 20)
	token, err := auth.GetAccessToken(database.TestSeeker2.Email, testDB)
	assert.NoError(t, err)

	rec, _ := uploadResume(t, r, token, "resume.exe", "MZ...")

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestParse_missingFile(t *testing.T) {
	r := newRouter(10 << 20)
	token, err := auth.GetAccessToken(database.TestSeeker2.Email, testDB)
	assert.NoError(t, err)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	assert.NoError(t, writer.WriteField("unrelated", "value"))
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/resume/parse", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParse_oversizedFileRejected(t *testing.T) {
	r := newRouter(1024)
	token, err := auth.GetAccessToken(database.TestSeeker2.Email, testDB)
	assert.NoError(t, err)

	big := strings.Repeat("padding line for an oversized upload\n", 1024)
	rec, _ := uploadResume(t, r, token, "resume.txt", big)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestParse_employerForbidden(t *testing.T) {
	r := newRouter(10 << 20)
	token, err := auth.GetAccessToken(database.TestEmployer1.Email, testDB)
	assert.NoError(t, err)

	rec, _ := uploadResume(t, r, token, "resume.txt", sampleResume)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
