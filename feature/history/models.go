package history

import "time"

// Run is one persisted provisioning run outcome.
type Run struct {
	// ID is the run's unique identifier.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
	// DurationMs is the run duration in milliseconds.
	DurationMs int64 `json:"duration_ms"`
	// Success mirrors the result's success flag.
	Success bool `json:"success"`
	// CreatedCount is the number of created (or updated) collections.
	CreatedCount int `json:"created_count"`
	// SkippedCount is the number of skipped collections.
	SkippedCount int `json:"skipped_count"`
	// ErrorCount is the number of recorded errors.
	ErrorCount int `json:"error_count"`
	// Summary is the result's human-readable summary line.
	Summary string `gorm:"size:255" json:"summary"`
}

// TableName maps the model to its table.
func (Run) TableName() string {
	return "provision_runs"
}
