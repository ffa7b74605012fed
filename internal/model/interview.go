package model

import (
	"time"

	"github.com/google/uuid"
)

// Interview statuses advance independently of the owning application's
// status and stage.
var (
	InterviewScheduled = "scheduled"
	InterviewCompleted = "completed"
	InterviewCancelled = "cancelled"
	InterviewNoShow    = "no-show"
)

// Interviewer describes one person on the company side of an interview.
type Interviewer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InterviewFeedback is the optional outcome recorded after an interview.
type InterviewFeedback struct {
	Rating         *int   `gorm:"check:rating IS NULL OR (rating >= 1 AND rating <= 5)" json:"rating,omitempty"`
	Comments       string `gorm:"type:text" json:"comments,omitempty"`
	Recommendation string `gorm:"type:text" json:"recommendation,omitempty"`
}

// Interview is a scheduled meeting tied to exactly one application.
// Re-scheduling creates a new record rather than mutating history.
type Interview struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	ApplicationID uint        `gorm:"not null;index;<-:create" json:"application_id"`
	Application   Application `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	JobID       uint      `gorm:"not null;<-:create" json:"job_id"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"applicant_id"`
	EmployerID  uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"employer_id"`

	ScheduledAt  time.Time     `gorm:"type:timestamp;not null;index" json:"scheduled_at"`
	Duration     int           `gorm:"default:60" json:"duration"`
	Type         string        `gorm:"type:text;not null" json:"type"`
	Location     string        `gorm:"type:text" json:"location"`
	Interviewers []Interviewer `gorm:"serializer:json" json:"interviewers"`
	Status       string        `gorm:"type:text;default:'scheduled';index" json:"status"`
	Notes        string        `gorm:"type:text" json:"notes"`

	Feedback InterviewFeedback `gorm:"embedded;embeddedPrefix:feedback_" json:"feedback"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
