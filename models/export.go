package models

import (
	"time"

	"github.com/google/uuid"
)

// Export represents an archived workbook export
type Export struct {
	ID            uuid.UUID `json:"id"`
	Filename      string    `json:"filename"`
	MimeType      string    `json:"mime_type"`
	Size          int64     `json:"size"`
	StoragePath   string    `json:"-"`
	RelationCount int       `json:"relation_count"`
	RightRows     int       `json:"right_rows"`
	DutyRows      int       `json:"duty_rows"`
	GoalRows      int       `json:"goal_rows"`
	ObjectRows    int       `json:"object_rows"`
	SubjectRows   int       `json:"subject_rows"`
	CreatedAt     time.Time `json:"created_at"`
}

// SetTotals copies per-sheet row counts onto the export record
func (e *Export) SetTotals(t Totals) {
	e.RelationCount = t.Relations
	e.RightRows = t.Rights
	e.DutyRows = t.Duties
	e.GoalRows = t.Goals
	e.ObjectRows = t.Objects
	e.SubjectRows = t.Subjects
}
