package model

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses, the coarse pipeline position a candidate is in.
var (
	StatusApplied            = "applied"
	StatusScreening          = "screening"
	StatusInterviewScheduled = "interview_scheduled"
	StatusInterviewed        = "interviewed"
	StatusOfferSent          = "offer_sent"
	StatusHired              = "hired"
	StatusRejected           = "rejected"
	StatusWithdrawn          = "withdrawn"
)

// ATS stages, the finer-grained employer-facing pipeline label. Set
// explicitly alongside status on each transition, never derived from it.
var (
	StageApplicationReceived = "application_received"
	StageScreening           = "screening"
	StagePhoneScreen         = "phone_screen"
	StageInterview           = "interview"
	StageFinalInterview      = "final_interview"
	StageOffer               = "offer"
	StageHired               = "hired"
	StageRejected            = "rejected"
)

// Application represents one candidate's pursuit of one job. The composite
// unique index on (job_id, applicant_id) is the authority that rejects
// duplicate submissions, including racing concurrent ones.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	JobID uint `gorm:"not null;index;uniqueIndex:idx_job_applicant;<-:create" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"job,omitempty"`

	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_applicant;<-:create" json:"applicant_id"`
	Applicant   User      `gorm:"foreignKey:ApplicantID;references:ID" json:"-"`

	EmployerID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"employer_id"`
	Employer   User      `gorm:"foreignKey:EmployerID;references:ID" json:"-"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	Status      string `gorm:"type:text;not null;default:'applied';index" json:"status"`
	ATSStage    string `gorm:"type:text;not null;default:'application_received'" json:"ats_stage"`

	// Set once at creation from the applicant's parsed resume data, 0 if unscored.
	Score int `gorm:"default:0;check:score >= 0 AND score <= 100" json:"score"`

	Notes []ApplicationNote `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`

	AppliedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->;index:,sort:desc" json:"applied_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// ApplicationNote is one entry in an application's append-only note trail.
// Rows are only ever inserted.
type ApplicationNote struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	ApplicationID uint      `gorm:"not null;index;<-:create" json:"application_id"`
	AuthorID      uuid.UUID `gorm:"type:uuid;not null;<-:create" json:"author_id"`
	Content       string    `gorm:"type:text;not null;<-:create" json:"content"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// IsTerminalStatus reports whether s is an absorbing status that rejects
// every further transition.
func IsTerminalStatus(s string) bool {
	return s == StatusHired || s == StatusRejected || s == StatusWithdrawn
}
