package domain

import "time"

// CleanupResult holds per-category deletion counts of one retention cycle.
type CleanupResult struct {
	Disabled           bool          `json:"disabled,omitempty"`
	Skipped            bool          `json:"skipped,omitempty"`
	DisabledFeeds      int64         `json:"disabledFeeds"`
	CompletedTasks     int64         `json:"completedTasks"`
	CompletedNoteTodos int64         `json:"completedNoteTodos"`
	ArchivedNotes      int64         `json:"archivedNotes"`
	PastEvents         int64         `json:"pastEvents"`
	Total              int64         `json:"total"`
	Duration           time.Duration `json:"durationNs"`
}

type CleanupConfig struct {
	IntervalHours      int `json:"intervalHours"`
	CompletedTasksDays int `json:"completedTasksDays"`
	ArchivedNotesDays  int `json:"archivedNotesDays"`
	PastEventsDays     int `json:"pastEventsDays"`
}

// CleanupStatus is the read-only view exposed to the admin surface.
type CleanupStatus struct {
	Enabled   bool          `json:"enabled"`
	Running   bool          `json:"running"`
	Scheduled bool          `json:"scheduled"`
	Config    CleanupConfig `json:"config"`
}
