package models

import (
	"time"

	"github.com/yukikurage/task-manager/internal/validation"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Priorities lists the accepted priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority returns the priority named by s.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Description string    `gorm:"type:text" json:"description"`
	Deadline    time.Time `gorm:"not null;index" json:"deadline" validate:"deadline_lead"`
	Priority    Priority  `gorm:"type:varchar(10);not null" json:"priority" validate:"oneof=LOW MEDIUM HIGH"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	TaskTypeID  *uint64   `gorm:"index" json:"task_type_id"`
	ProjectID   uint64    `gorm:"not null;index" json:"project_id" validate:"required"`
	AssigneeID  *uint64   `gorm:"index" json:"assignee_id"`
	CreatedByID *uint64   `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	TaskType  *TaskType `gorm:"foreignKey:TaskTypeID" json:"task_type,omitempty" validate:"-"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty" validate:"-"`
	Assignee  *Worker   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty" validate:"-"`
	CreatedBy *Worker   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty" validate:"-"`
}

// BeforeSave re-validates the task on every create and update, so moving an
// existing deadline closer than the minimum lead fails as well.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	return validation.Struct(t)
}

// IsCreatedBy reports whether w created the task.
func (t *Task) IsCreatedBy(w *Worker) bool {
	return w != nil && t.CreatedByID != nil && *t.CreatedByID == w.ID
}

// IsAssignedTo reports whether the task is assigned to w.
func (t *Task) IsAssignedTo(w *Worker) bool {
	return w != nil && t.AssigneeID != nil && *t.AssigneeID == w.ID
}
