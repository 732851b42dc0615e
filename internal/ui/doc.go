// Package ui implements an interactive browser for folders of team files using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow:
//  1. [TeamListView] : Browse the team files of a folder
//  2. [PlayerListView] : Inspect the roster of one team
//  3. [ConfirmView] : Confirm correcting the whole folder
//  4. [CorrectView] : Monitor progress while files are rewritten
//  5. [ResultView] : Display written and skipped files
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the [tasks.Engine].
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, c, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
//
// The package also renders the styled summaries printed by the CLI.
package ui
