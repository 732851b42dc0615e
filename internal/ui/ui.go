package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/mannschaft/internal/formatter"
	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TeamListView ViewState = iota
	PlayerListView
	ConfirmView
	CorrectView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	dir          string
	engine       *tasks.Engine
	width        int
	height       int
	teamList     list.Model
	folder       *formatter.Folder
	playerList   list.Model
	selected     *models.Team
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	report       *tasks.BatchReport
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a browser for the team files in dir.
func NewModel(ctx context.Context, dir string, engine *tasks.Engine) *Model {
	return &Model{
		ctx:    ctx,
		view:   TeamListView,
		dir:    dir,
		engine: engine,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init initializes the TUI by reading the folder.
func (m *Model) Init() tea.Cmd {
	return m.loadFolder()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.folder != nil {
			m.teamList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.selected != nil {
			m.playerList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if m.err != nil && m.view != ResultView {
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		switch m.view {
		case TeamListView:
			return m.handleTeamListKeys(msg)
		case PlayerListView:
			return m.handlePlayerListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgFolderLoaded:
		data := msg.data.(folderLoaded)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.folder = data.folder
		items := make([]list.Item, len(data.folder.Teams))
		for i, team := range data.folder.Teams {
			items[i] = teamItem{team: team}
		}
		m.teamList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.teamList.Title = fmt.Sprintf("Teams in %s", m.dir)
		m.teamList.SetSize(m.width-4, m.height-8)
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgCorrectComplete:
		data := msg.data.(correctComplete)
		m.report = data.report
		m.err = data.err
		m.view = ResultView
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return Styles.Err(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case TeamListView:
		return m.renderTeamList()
	case PlayerListView:
		return m.renderPlayerList()
	case ConfirmView:
		return m.renderConfirm()
	case CorrectView:
		return m.renderCorrect()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleTeamListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.folder == nil {
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.teamList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.correct):
			m.view = ConfirmView
			return m, nil
		case key.Matches(msg, m.keys.open):
			if item, ok := m.teamList.SelectedItem().(teamItem); ok {
				m.openTeam(item.team)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.teamList, cmd = m.teamList.Update(msg)
	return m, cmd
}

func (m *Model) openTeam(team *models.Team) {
	m.selected = team
	players := team.Players()
	items := make([]list.Item, len(players))
	for i, p := range players {
		items[i] = playerItem{player: p}
	}
	m.playerList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.playerList.Title = fmt.Sprintf("%s (%d declared)", team.FileID, team.DeclaredPlayers())
	m.playerList.SetSize(m.width-4, m.height-8)
	m.view = PlayerListView
}

func (m *Model) handlePlayerListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = TeamListView
		m.selected = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.playerList, cmd = m.playerList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel), key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.back):
		m.view = TeamListView
		return m, nil
	case key.Matches(msg, m.keys.confirm):
		m.view = CorrectView
		return m, m.startCorrect()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.reload):
		m.view = TeamListView
		m.report = nil
		m.err = nil
		return m, m.loadFolder()
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.view == TeamListView && m.folder != nil:
		m.teamList, cmd = m.teamList.Update(msg)
	case m.view == PlayerListView && m.selected != nil:
		m.playerList, cmd = m.playerList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadFolder() tea.Cmd {
	return func() tea.Msg {
		folder, err := m.engine.Reader().ReadFolder(m.dir)
		return folderLoadedMsg(folder, err)
	}
}

func (m *Model) startCorrect() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		report, err := m.engine.Correct(m.ctx, progress, m.dir)
		m.report, m.err = report, err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return correctCompleteMsg(m.report, m.err)
		}

		update, ok := <-progress
		if !ok {
			return correctCompleteMsg(m.report, m.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderTeamList() string {
	if m.folder == nil {
		return Styles.Help(fmt.Sprintf("Reading %s...", m.dir))
	}

	helpKeys := []key.Binding{m.keys.open, m.keys.correct, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	var skipped string
	if len(m.folder.Skipped) > 0 {
		skipped = "\n" + Styles.Warn(fmt.Sprintf("%d unreadable files skipped", len(m.folder.Skipped)))
	}
	return fmt.Sprintf("%s%s\n\n%s", m.teamList.View(), skipped, helpView)
}

func (m *Model) renderPlayerList() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playerList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := Styles.Title(fmt.Sprintf("Correct all team files in %s?", m.dir))
	teams := 0
	if m.folder != nil {
		teams = len(m.folder.Teams)
	}
	info := fmt.Sprintf("\nTeams: %d\nOutput: %s\n", teams, m.engine.Config().Output.Dir)

	helpKeys := []key.Binding{m.keys.confirm, m.keys.cancel, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderCorrect() string {
	title := Styles.Title("Correcting Team Files")

	var phase string
	switch m.progress.Phase {
	case tasks.ScanFolder:
		phase = "Reading folder..."
	case tasks.WriteFiles:
		phase = fmt.Sprintf("Writing files (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return Styles.Err(fmt.Sprintf("Correction failed: %v\n\nPress r to reload, q to quit", m.err))
	}
	if m.report == nil {
		return Styles.Err("No result available\n\nPress r to reload, q to quit")
	}

	helpKeys := []key.Binding{m.keys.reload, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s", RenderReport(m.report), helpView)
}
