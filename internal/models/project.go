package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,max=100"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Per-row counts, filled only by list queries
	WorkersCount int64 `gorm:"->;-:migration" json:"workers_count"`
	TasksCount   int64 `gorm:"->;-:migration" json:"tasks_count"`

	// Relations
	Workers []Worker `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	Tasks   []Task   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}
