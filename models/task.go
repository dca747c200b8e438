package models

import "time"

// Task is a checklist item owned by a Project. Tasks are created by hand or
// bulk-created from a material-estimation result.
type Task struct {
	ID        int64     `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID int64     `json:"projectId" db:"project_id" gorm:"column:project_id;not null;index"`
	Title     string    `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	IsDone    bool      `json:"isDone" db:"is_done" gorm:"column:is_done;not null;default:false"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Task) TableName() string {
	return "tasks"
}
