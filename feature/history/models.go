package history

import "time"

// MergeJob is one recorded merge run.
type MergeJob struct {
	// ID is the job identifier (UUID).
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// CreatedAt is when the merge ran.
	CreatedAt time.Time `json:"created_at"`

	// Sources lists the input workbook names, comma separated.
	Sources string `gorm:"size:2048" json:"sources"`

	// Policy is the conflict policy the merge used.
	Policy string `gorm:"size:32" json:"policy"`

	// RowsIn and RowsOut are the input and merged row counts.
	RowsIn  int `json:"rows_in"`
	RowsOut int `json:"rows_out"`

	// Conflicts and Duplicates are the issue counts of the run.
	Conflicts  int `json:"conflicts"`
	Duplicates int `json:"duplicates"`

	// ArchiveKey is the object key of the archived output workbook,
	// empty when no archive store was available.
	ArchiveKey string `gorm:"size:255" json:"archive_key"`
}

// TableName sets the table name for GORM.
func (MergeJob) TableName() string {
	return "merge_jobs"
}
