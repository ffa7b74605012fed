package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User roles
var (
	// RoleJobSeeker is a candidate applying to job postings
	RoleJobSeeker = "jobseeker"
	// RoleEmployer is a company owner managing postings and the hiring pipeline
	RoleEmployer = "employer"
	// RoleHR is a delegate user under an employer's company with scoped permissions
	RoleHR = "hr"
	// RoleAdmin is a platform administrator
	RoleAdmin = "admin"
)

// HRPermissions holds the per-delegate capability flags an employer grants
// to an HR user. Employers implicitly hold every permission.
type HRPermissions struct {
	CanPostJobs              bool `gorm:"default:false" json:"can_post_jobs"`
	CanManageApplications    bool `gorm:"default:false" json:"can_manage_applications"`
	CanScheduleInterviews    bool `gorm:"default:false" json:"can_schedule_interviews"`
	CanAccessReports         bool `gorm:"default:false" json:"can_access_reports"`
	CanManageHRUsers         bool `gorm:"default:false" json:"can_manage_hr_users"`
	CanManageCompanySettings bool `gorm:"default:false" json:"can_manage_company_settings"`
}

// ExperienceEntry is one span of work history parsed from a resume.
type ExperienceEntry struct {
	Title     string     `json:"title"`
	Company   string     `json:"company"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Current   bool       `json:"current"`
}

// EducationEntry is one span of academic history parsed from a resume.
type EducationEntry struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// User is the gorm model for every account on the platform. Role decides
// which of the optional field groups are meaningful.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text" json:"-"`
	FirstName string    `gorm:"type:text" json:"first_name"`
	LastName  string    `gorm:"type:text" json:"last_name"`
	Phone     *string   `gorm:"type:text" json:"phone,omitempty"`
	Role      string    `gorm:"type:text;not null;index" json:"role"`
	GoogleID  string    `gorm:"type:text;index" json:"-"`

	// Employer / HR fields
	CompanyID     *uuid.UUID    `gorm:"type:uuid;index" json:"company_id,omitempty"`
	Company       *Company      `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	HRPermissions HRPermissions `gorm:"embedded;embeddedPrefix:hr_" json:"hr_permissions"`

	// Job seeker fields, populated by the resume parse endpoint
	ResumeURL      string            `gorm:"type:text" json:"resume_url,omitempty"`
	Headline       string            `gorm:"type:text" json:"headline,omitempty"`
	Skills         pq.StringArray    `gorm:"type:text[]" json:"skills,omitempty"`
	Experience     []ExperienceEntry `gorm:"serializer:json" json:"experience,omitempty"`
	Education      []EducationEntry  `gorm:"serializer:json" json:"education,omitempty"`
	Summary        string            `gorm:"type:text" json:"summary,omitempty"`
	CandidateScore int               `gorm:"default:0" json:"candidate_score"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// IsEmployerSide reports whether the user acts for a company.
func (u *User) IsEmployerSide() bool {
	return u.Role == RoleEmployer || u.Role == RoleHR
}

// Can reports whether the user may perform an HR-gated action. Employers
// always can; HR users need the matching permission flag.
func (u *User) Can(perm func(HRPermissions) bool) bool {
	if u.Role == RoleEmployer {
		return true
	}
	if u.Role == RoleHR {
		return perm(u.HRPermissions)
	}
	return false
}

// Company is the gorm model for an employer's organization profile.
type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Industry    string    `gorm:"type:text" json:"industry"`
	Size        *string   `gorm:"type:text" json:"size,omitempty"`
	Website     string    `gorm:"type:text" json:"website"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
