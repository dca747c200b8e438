package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project represents a construction project owned by a client account.
type Project struct {
	ID              int64                      `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name            string                     `json:"name" db:"name" gorm:"column:name;type:text;not null"`
	Address         string                     `json:"address" db:"address" gorm:"column:address;type:text;not null"`
	StartDate       string                     `json:"startDate" db:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate         *string                    `json:"endDate,omitempty" db:"end_date" gorm:"column:end_date;type:date"`
	Budget          float64                    `json:"budget" db:"budget" gorm:"column:budget;type:numeric;not null;default:0"`
	SqMeters        float64                    `json:"sqMeters" db:"sq_meters" gorm:"column:sq_meters;type:numeric;not null;default:0"`
	Type            string                     `json:"type" db:"type" gorm:"column:type;type:text;not null"`
	Notes           *string                    `json:"notes,omitempty" db:"notes" gorm:"column:notes;type:text"`
	CompletedStages datatypes.JSONSlice[int]   `json:"completedStages" db:"completed_stages" gorm:"column:completed_stages;type:jsonb"`
	CurrentStage    *string                    `json:"currentStage,omitempty" db:"current_stage" gorm:"column:current_stage;type:text"`
	CreatedAt       time.Time                  `json:"createdAt" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

// ProjectPatch is a partial update of a Project. A nil field is left
// untouched; a non-nil field is applied even when it points at a zero
// value, so budgets can be cleared back to 0 explicitly.
type ProjectPatch struct {
	Name            *string   `json:"name,omitempty"`
	Address         *string   `json:"address,omitempty"`
	StartDate       *string   `json:"startDate,omitempty"`
	EndDate         *string   `json:"endDate,omitempty"`
	Budget          *float64  `json:"budget,omitempty"`
	SqMeters        *float64  `json:"sqMeters,omitempty"`
	Type            *string   `json:"type,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CompletedStages *[]int    `json:"completedStages,omitempty"`
	CurrentStage    *string   `json:"currentStage,omitempty"`
}

// Columns returns the snake_case column assignments this patch carries.
func (p ProjectPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	if p.StartDate != nil {
		cols["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		cols["end_date"] = *p.EndDate
	}
	if p.Budget != nil {
		cols["budget"] = *p.Budget
	}
	if p.SqMeters != nil {
		cols["sq_meters"] = *p.SqMeters
	}
	if p.Type != nil {
		cols["type"] = *p.Type
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	if p.CompletedStages != nil {
		cols["completed_stages"] = datatypes.NewJSONSlice(*p.CompletedStages)
	}
	if p.CurrentStage != nil {
		cols["current_stage"] = *p.CurrentStage
	}
	return cols
}

func (Project) TableName() string {
	return "projects"
}
