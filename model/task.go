package model

import (
	"time"

	"gorm.io/datatypes"
)

// StandingTaskID is the one task slot whose completion survives
// recomputation. All other slots are regenerated from scratch.
const StandingTaskID = 1

// StandingTaskText is the standing slot's text
const StandingTaskText = "Research top universities for your major"

// TaskItem is a single recommended action item. Derived state; only the
// standing slot's completion flag is persisted.
type TaskItem struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TaskState persists what the task engine needs across recomputations:
// the standing slot's completion flag plus a snapshot of the last
// generated list (used as the "previous list" input on the next run).
type TaskState struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UserID            uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	ResearchCompleted bool           `gorm:"default:false" json:"research_completed"`
	Snapshot          datatypes.JSON `json:"snapshot"` // []TaskItem
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// TableName specifies the table name for TaskState
func (TaskState) TableName() string {
	return "user_task_state"
}
