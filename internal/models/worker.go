package models

import (
	"time"

	"github.com/yukikurage/task-manager/internal/validation"
	"gorm.io/gorm"
)

type Worker struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Username       string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username" validate:"required,max=150,username"`
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-" validate:"-"`
	FirstName      string     `gorm:"type:varchar(150)" json:"first_name" validate:"omitempty,max=150,alphaunicode"`
	LastName       string     `gorm:"type:varchar(150)" json:"last_name" validate:"omitempty,max=150,alphaunicode"`
	Email          string     `gorm:"type:varchar(254)" json:"email" validate:"omitempty,email,max=254"`
	PositionID     *uint64    `gorm:"index" json:"position_id"`
	ProjectID      *uint64    `gorm:"index" json:"project_id"`
	CompletedTasks uint       `gorm:"not null;default:0" json:"completed_tasks"`
	IsSuperuser    bool       `gorm:"not null;default:false" json:"is_superuser"`
	IsStaff        bool       `gorm:"not null;default:false" json:"is_staff"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	DateJoined     time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin      *time.Time `json:"last_login"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Number of tasks assigned to the worker, filled only by list queries
	TasksCount int64 `gorm:"->;-:migration" json:"tasks_count"`

	// Relations
	Position      *Position `gorm:"foreignKey:PositionID" json:"position,omitempty" validate:"-"`
	Project       *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty" validate:"-"`
	AssignedTasks []Task    `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	CreatedTasks  []Task    `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
}

// BeforeSave re-validates the worker on every create and update.
func (w *Worker) BeforeSave(tx *gorm.DB) error {
	return validation.Struct(w)
}
