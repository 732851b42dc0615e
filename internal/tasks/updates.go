package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a batch operation.
//
// Used to send updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	ReadInput Phase = iota
	MatchRows
	WriteFiles
	ScanFolder
	ExportRows
)

func (p Phase) String() string {
	switch p {
	case ReadInput:
		return "read_input"
	case MatchRows:
		return "match_rows"
	case WriteFiles:
		return "write_files"
	case ScanFolder:
		return "scan_folder"
	case ExportRows:
		return "export_rows"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func readInputUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadInput,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reading %s...", path),
	}
}

func reconcileUpdate(players, teams int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchRows,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Matching %d players against %d teams...", players, teams),
	}
}

func writeFileUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, path),
		Data:    path,
	}
}

func writeFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func readFolderUpdate(dir string, teams, skipped int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanFolder,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Read %d team files from %s (%d skipped)", teams, dir, skipped),
	}
}

func exportRowsUpdate(path string, rows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportRows,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Wrote %d rows to %s", rows, path),
		Data:    path,
	}
}
