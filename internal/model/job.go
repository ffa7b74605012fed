package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job type and experience level enums
var (
	JobTypes         = []string{"full-time", "part-time", "contract", "freelance", "internship", "temporary"}
	ExperienceLevels = []string{"entry", "mid", "senior", "executive"}
)

// Salary is the advertised compensation range on a posting.
type Salary struct {
	Min      *int   `json:"min,omitempty"`
	Max      *int   `json:"max,omitempty"`
	Currency string `gorm:"type:text;default:'USD'" json:"currency"`
	Period   string `gorm:"type:text;default:'yearly'" json:"period"`
}

// EditableJobInfo is the part of a job post the employer can set and edit.
type EditableJobInfo struct {
	Title               string         `gorm:"type:text;not null" json:"title" binding:"required"`
	Description         string         `gorm:"type:text;not null" json:"description" binding:"required"`
	Requirements        pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Responsibilities    pq.StringArray `gorm:"type:text[]" json:"responsibilities"`
	Location            string         `gorm:"type:text;not null" json:"location" binding:"required"`
	JobType             string         `gorm:"type:text;not null" json:"job_type" binding:"required,oneof=full-time part-time contract freelance internship temporary"`
	Category            string         `gorm:"type:text;not null" json:"category" binding:"required"`
	ExperienceLevel     string         `gorm:"type:text;not null" json:"experience_level" binding:"required,oneof=entry mid senior executive"`
	Salary              Salary         `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Benefits            pq.StringArray `gorm:"type:text[]" json:"benefits"`
	Skills              pq.StringArray `gorm:"type:text[]" json:"skills"`
	IsUrgent            bool           `gorm:"default:false" json:"is_urgent"`
	ApplicationDeadline *time.Time     `gorm:"type:timestamp" json:"application_deadline,omitempty"`
}

// Job is the gorm model for a posting. ApplicationsCount tracks the number
// of non-withdrawn applications and is only ever changed with atomic SQL
// increments, never read-modify-write in request code.
type Job struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	EmployerID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"employer_id"`
	Employer   User      `gorm:"foreignKey:EmployerID;references:ID" json:"-"`
	EditableJobInfo

	ApplicationsCount int  `gorm:"default:0" json:"applications_count"`
	Views             int  `gorm:"default:0" json:"views"`
	IsActive          bool `gorm:"default:true;index" json:"is_active"`

	PostedAt  time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"posted_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}
