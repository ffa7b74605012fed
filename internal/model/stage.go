package model

import (
	"time"

	"github.com/google/uuid"
)

// PipelineStage is an employer-defined label on the hiring board, layered
// on top of the fixed ATS stage enum. Stages are soft-disabled via IsActive
// so historical applications referencing a label stay displayable; no two
// active stages of one employer may share an Order value.
type PipelineStage struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	EmployerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_employer_order;<-:create" json:"employer_id"`
	Employer    User      `gorm:"foreignKey:EmployerID;references:ID" json:"-"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"type:text;default:'#3B82F6'" json:"color"`
	Order       int       `gorm:"column:stage_order;not null;index:idx_employer_order" json:"order"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
