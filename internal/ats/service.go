package ats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/notify"
	"github.com/riyanshibariyaa/jp5/internal/resume"
)

// Service owns the application pipeline: submissions, the status/stage state
// machine and its side effects. Constructed once at startup and handed to the
// controllers; collaborators are injected, never looked up through globals.
type Service struct {
	DB       *database.DBinstanceStruct
	Mailer   notify.Mailer
	Calendar notify.Calendar
}

// NewService creates a pipeline service with the given collaborators.
func NewService(db *database.DBinstanceStruct, mailer notify.Mailer, cal notify.Calendar) *Service {
	return &Service{DB: db, Mailer: mailer, Calendar: cal}
}

// Submit creates an application for the applicant on the given job. The
// composite unique index on (job_id, applicant_id) decides duplicate races;
// the score is computed from the applicant's stored resume data, 0 when
// nothing has been parsed yet.
func (s *Service) Submit(ctx context.Context, applicant model.User, jobID uint, coverLetter string) (model.Application, error) {
	var job model.Job
	if err := s.DB.WithContext(ctx).Where("id = ? AND is_active = ?", jobID, true).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Application{}, fmt.Errorf("job %d: %w", jobID, ErrNotFound)
		}
		return model.Application{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	application := model.Application{
		JobID:       jobID,
		ApplicantID: applicant.ID,
		EmployerID:  job.EmployerID,
		CoverLetter: coverLetter,
		Status:      model.StatusApplied,
		ATSStage:    model.StageApplicationReceived,
		Score:       resume.Score(parsedProfile(applicant)),
		UpdatedAt:   time.Now(),
	}

	if err := s.DB.WithContext(ctx).Create(&application).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return model.Application{}, ErrDuplicateApplication
			case "23503":
				return model.Application{}, fmt.Errorf("job %d: %w", jobID, ErrNotFound)
			}
		}
		return model.Application{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	// Atomic increment, a read-modify-write here would lose updates under
	// concurrent submissions.
	if err := s.DB.WithContext(ctx).Model(&model.Job{}).Where("id = ?", jobID).
		UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).Error; err != nil {
		log.Printf("failed to increment applications count for job %d: %v", jobID, err)
	}

	if err := s.Mailer.Send(notify.KindApplicationSubmitted, applicant.Email, map[string]string{
		"first_name":   applicant.FirstName,
		"job_title":    job.Title,
		"company_name": companyName(s.DB, job.EmployerID),
	}); err != nil {
		// The application is committed, notification failure must not
		// surface to the caller.
		log.Printf("failed to send application email to %s: %v", applicant.Email, err)
	}

	return application, nil
}

// ScheduleInput is the request payload for scheduling an interview.
type ScheduleInput struct {
	ApplicationID uint                `json:"application_id" binding:"required"`
	ScheduledAt   time.Time           `json:"scheduled_at" binding:"required"`
	Duration      int                 `json:"duration"`
	Type          string              `json:"type" binding:"required,oneof=phone video in-person technical"`
	Location      string              `json:"location"`
	Notes         string              `json:"notes"`
	Interviewers  []model.Interviewer `json:"interviewers"`
}

// ScheduleInterview creates an interview record and moves the application to
// interview_scheduled/interview. Re-scheduling creates a new record rather
// than mutating history. Email and calendar failures are logged, not
// surfaced: the transition has already committed.
func (s *Service) ScheduleInterview(ctx context.Context, actor model.User, in ScheduleInput) (model.Interview, error) {
	if !actor.Can(func(p model.HRPermissions) bool { return p.CanScheduleInterviews }) {
		return model.Interview{}, ErrPermissionDenied
	}

	application, err := s.loadScoped(ctx, actor, in.ApplicationID)
	if err != nil {
		return model.Interview{}, err
	}

	if in.Duration <= 0 {
		in.Duration = 60
	}

	interview := model.Interview{
		ApplicationID: application.ID,
		JobID:         application.JobID,
		ApplicantID:   application.ApplicantID,
		EmployerID:    application.EmployerID,
		ScheduledAt:   in.ScheduledAt,
		Duration:      in.Duration,
		Type:          in.Type,
		Location:      in.Location,
		Notes:         in.Notes,
		Interviewers:  in.Interviewers,
		Status:        model.InterviewScheduled,
		UpdatedAt:     time.Now(),
	}

	if err := s.DB.WithContext(ctx).Create(&interview).Error; err != nil {
		return model.Interview{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	if err := s.DB.WithContext(ctx).Model(&model.Application{}).Where("id = ?", application.ID).
		Updates(map[string]interface{}{
			"status":     model.StatusInterviewScheduled,
			"ats_stage":  model.StageInterview,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return model.Interview{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	if err := s.Mailer.Send(notify.KindInterviewScheduled, application.Applicant.Email, map[string]string{
		"first_name":   application.Applicant.FirstName,
		"job_title":    application.Job.Title,
		"scheduled_at": in.ScheduledAt.Format(time.RFC1123),
		"type":         in.Type,
		"location":     in.Location,
	}); err != nil {
		log.Printf("failed to send interview email to %s: %v", application.Applicant.Email, err)
	}

	if _, err := s.Calendar.CreateEvent(ctx, notify.CalendarEvent{
		Title:       fmt.Sprintf("Interview: %s", application.Job.Title),
		Description: fmt.Sprintf("Interview with %s %s", application.Applicant.FirstName, application.Applicant.LastName),
		Start:       in.ScheduledAt,
		Duration:    in.Duration,
		Attendees:   []string{application.Applicant.Email},
	}); err != nil {
		log.Printf("failed to create calendar event for interview %d: %v", interview.ID, err)
	}

	return interview, nil
}

// TransitionStage moves an application to a new status and stage. The actor
// must be the owning employer or an HR user with the manage-applications
// permission; applicants may only withdraw their own application. Both enums
// are set explicitly by the caller, the stage is not derived from the status.
func (s *Service) TransitionStage(ctx context.Context, actor model.User, applicationID uint, newStatus, newStage string) (model.Application, error) {
	var application model.Application
	if err := s.DB.WithContext(ctx).Preload("Employer").Where("id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Application{}, ErrNotFound
		}
		return model.Application{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	switch {
	case actor.ID == application.ApplicantID:
		// Candidates can only withdraw.
		if newStatus != model.StatusWithdrawn {
			return model.Application{}, ErrPermissionDenied
		}
	case sameEmployerScope(actor, application.Employer):
		if !actor.Can(func(p model.HRPermissions) bool { return p.CanManageApplications }) {
			return model.Application{}, ErrPermissionDenied
		}
	default:
		return model.Application{}, ErrPermissionDenied
	}

	// Empty inputs keep the current value; either enum can move alone.
	if newStatus == "" {
		newStatus = application.Status
	}
	if newStage == "" {
		newStage = application.ATSStage
	}
	if !ValidStatus(newStatus) || !ValidStage(newStage) {
		return model.Application{}, ErrInvalidTransition
	}
	if newStatus != application.Status && !CanTransition(application.Status, newStatus) {
		return model.Application{}, ErrInvalidTransition
	}
	if newStatus == application.Status && model.IsTerminalStatus(application.Status) {
		return model.Application{}, ErrInvalidTransition
	}

	if err := s.DB.WithContext(ctx).Model(&model.Application{}).Where("id = ?", application.ID).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"ats_stage":  newStage,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return model.Application{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	// applications_count only counts non-withdrawn applications.
	if newStatus == model.StatusWithdrawn {
		if err := s.DB.WithContext(ctx).Model(&model.Job{}).Where("id = ?", application.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count - 1")).Error; err != nil {
			log.Printf("failed to decrement applications count for job %d: %v", application.JobID, err)
		}
	}

	application.Status = newStatus
	application.ATSStage = newStage
	application.UpdatedAt = time.Now()
	return application, nil
}

// AddNote appends to an application's note trail. Notes are never edited or
// deleted; the only business failure is a missing or out-of-scope application.
func (s *Service) AddNote(ctx context.Context, actor model.User, applicationID uint, content string) (model.ApplicationNote, error) {
	var application model.Application
	if err := s.DB.WithContext(ctx).Preload("Employer").Where("id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ApplicationNote{}, ErrNotFound
		}
		return model.ApplicationNote{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	if actor.ID != application.ApplicantID && !sameEmployerScope(actor, application.Employer) && actor.Role != model.RoleAdmin {
		return model.ApplicationNote{}, ErrNotFound
	}

	note := model.ApplicationNote{
		ApplicationID: application.ID,
		AuthorID:      actor.ID,
		Content:       content,
	}
	if err := s.DB.WithContext(ctx).Create(&note).Error; err != nil {
		return model.ApplicationNote{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return note, nil
}

// FeedbackInput carries the outcome recorded after an interview took place.
type FeedbackInput struct {
	Rating         *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Comments       string `json:"comments"`
	Recommendation string `json:"recommendation" binding:"omitempty,oneof=hire reject next_round"`
	Status         string `json:"status" binding:"omitempty,oneof=completed cancelled no-show"`
}

// RecordFeedback stores interview feedback and optionally closes out the
// interview's status. Only employer-side users within the owning company
// may record feedback.
func (s *Service) RecordFeedback(ctx context.Context, actor model.User, interviewID uint, in FeedbackInput) (model.Interview, error) {
	if !actor.Can(func(p model.HRPermissions) bool { return p.CanScheduleInterviews }) && actor.Role != model.RoleAdmin {
		return model.Interview{}, ErrPermissionDenied
	}

	var interview model.Interview
	if err := s.DB.WithContext(ctx).Where("id = ?", interviewID).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Interview{}, ErrNotFound
		}
		return model.Interview{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	if actor.Role != model.RoleAdmin {
		var employer model.User
		if err := s.DB.WithContext(ctx).Where("id = ?", interview.EmployerID).First(&employer).Error; err != nil {
			return model.Interview{}, fmt.Errorf("%w: %v", ErrTransient, err)
		}
		if !sameEmployerScope(actor, employer) {
			return model.Interview{}, ErrNotFound
		}
	}

	interview.Feedback = model.InterviewFeedback{
		Rating:         in.Rating,
		Comments:       in.Comments,
		Recommendation: in.Recommendation,
	}
	if in.Status != "" {
		interview.Status = in.Status
	}
	interview.UpdatedAt = time.Now()

	if err := s.DB.WithContext(ctx).Save(&interview).Error; err != nil {
		return model.Interview{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return interview, nil
}

// loadScoped fetches an application visible to an employer-side actor, with
// applicant and job preloaded. Out-of-scope ids report not found rather than
// forbidden so existence does not leak.
func (s *Service) loadScoped(ctx context.Context, actor model.User, applicationID uint) (model.Application, error) {
	var application model.Application
	err := s.DB.WithContext(ctx).
		Preload("Applicant").Preload("Job").Preload("Employer").
		Where("id = ?", applicationID).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Application{}, ErrNotFound
		}
		return model.Application{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	if !sameEmployerScope(actor, application.Employer) {
		return model.Application{}, ErrNotFound
	}
	return application, nil
}

// sameEmployerScope reports whether actor acts for the employer that owns a
// record: the employer themselves, or an HR delegate of the same company.
func sameEmployerScope(actor model.User, employer model.User) bool {
	if actor.ID == employer.ID {
		return true
	}
	if actor.Role == model.RoleHR && actor.CompanyID != nil && employer.CompanyID != nil {
		return *actor.CompanyID == *employer.CompanyID
	}
	return false
}

func parsedProfile(u model.User) resume.Parsed {
	return resume.Parsed{
		Skills:     u.Skills,
		Experience: u.Experience,
		Education:  u.Education,
		Summary:    u.Summary,
	}
}

func companyName(db *database.DBinstanceStruct, employerID interface{}) string {
	var employer model.User
	if err := db.Preload("Company").Where("id = ?", employerID).First(&employer).Error; err != nil {
		return ""
	}
	if employer.Company != nil {
		return employer.Company.Name
	}
	return ""
}
