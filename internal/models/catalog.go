package models

// Position is a job title a worker may hold.
type Position struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,max=100"`

	Workers []Worker `gorm:"foreignKey:PositionID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
}

// TaskType is a label attached to tasks.
type TaskType struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,max=100"`

	Tasks []Task `gorm:"foreignKey:TaskTypeID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
}
