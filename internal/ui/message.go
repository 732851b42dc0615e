package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/mannschaft/internal/formatter"
	"github.com/desertthunder/mannschaft/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgFolderLoaded MsgKind = iota
	MsgProgressUpdate
	MsgCorrectComplete
)

type folderLoaded struct {
	folder *formatter.Folder
	err    error
}

type correctComplete struct {
	report *tasks.BatchReport
	err    error
}

// folderLoadedMsg is the constructor for [MsgFolderLoaded]
func folderLoadedMsg(folder *formatter.Folder, err error) Msg {
	return Msg{kind: MsgFolderLoaded, data: folderLoaded{folder, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// correctCompleteMsg is the constructor for [MsgCorrectComplete]
func correctCompleteMsg(report *tasks.BatchReport, err error) Msg {
	return Msg{kind: MsgCorrectComplete, data: correctComplete{report, err}}
}
