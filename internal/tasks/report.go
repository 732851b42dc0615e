package tasks

import (
	"fmt"
	"time"

	"github.com/desertthunder/mannschaft/internal/formatter"
	"github.com/desertthunder/mannschaft/internal/shared"
)

// RowStatus is the outcome of one player row.
type RowStatus string

const (
	StatusAccepted  RowStatus = "accepted"
	StatusNoTeam    RowStatus = "no_team"   // no team row with the same club and team
	StatusBadDate   RowStatus = "bad_date"  // birth date could not be parsed
	StatusInvalid   RowStatus = "invalid"   // surname or given name missing
	StatusMalformed RowStatus = "malformed" // quarantined by the CSV reader
)

// RowOutcome records what happened to one player row.
type RowOutcome struct {
	Index  int       `json:"index"` // 0-based data row
	Club   string    `json:"club"`
	Team   string    `json:"team"`
	Status RowStatus `json:"status"`
	Reason string    `json:"reason,omitempty"`
}

func (o RowOutcome) String() string {
	if o.Reason == "" {
		return fmt.Sprintf("row %d (%s / %s): %s", o.Index, o.Club, o.Team, o.Status)
	}
	return fmt.Sprintf("row %d (%s / %s): %s: %s", o.Index, o.Club, o.Team, o.Status, o.Reason)
}

// BatchReport summarizes one batch run. It is written next to the output as a manifest.
type BatchReport struct {
	RunID        string                  `json:"run_id"`
	Command      string                  `json:"command"`
	StartedAt    time.Time               `json:"started_at"`
	Rows         []RowOutcome            `json:"rows,omitempty"`
	Files        []string                `json:"files"`
	SkippedFiles []formatter.SkippedFile `json:"skipped_files,omitempty"`
}

func newReport(command string, now time.Time) *BatchReport {
	return &BatchReport{
		RunID:     shared.GenerateID(),
		Command:   command,
		StartedAt: now,
		Files:     []string{},
	}
}

// Count returns the number of rows with status s.
func (r *BatchReport) Count(s RowStatus) int {
	n := 0
	for _, row := range r.Rows {
		if row.Status == s {
			n++
		}
	}
	return n
}

// Accepted returns the number of rows that became players.
func (r *BatchReport) Accepted() int { return r.Count(StatusAccepted) }

// Skipped returns the number of rows that were dropped.
func (r *BatchReport) Skipped() int { return len(r.Rows) - r.Accepted() }
