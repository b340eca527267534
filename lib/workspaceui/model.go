// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/surfctl/lib/clock"
	"github.com/bureau-foundation/surfctl/lib/logtail"
	"github.com/bureau-foundation/surfctl/lib/surf"
	"github.com/bureau-foundation/surfctl/lib/tui"
)

// Mode is the input state of the dashboard.
type Mode int

const (
	// ModeBrowsing routes keys to navigation, selection and commands.
	ModeBrowsing Mode = iota

	// ModeRenaming routes keys to the username prompt. Enter saves a
	// non-empty name, Esc cancels.
	ModeRenaming

	// ModeBusy means a refresh or action is in flight. Only quit is
	// accepted until the result is installed, so the list cannot
	// change under a pending action.
	ModeBusy
)

// Default timings, used when ModelConfig leaves them zero.
const (
	DefaultPostActionDelay = 10 * time.Second
	DefaultStatusTTL       = 3 * time.Second
	DefaultLogRows         = 10
)

// Directory is the remote workspace API as the dashboard uses it.
// *surf.Client implements it.
type Directory interface {
	List(ctx context.Context, username string) ([]surf.Workspace, error)
	Invoke(ctx context.Context, action surf.Action, names []string, snapshot []surf.Workspace) (*surf.ActionReport, error)
}

// ExecFunc suspends the program and runs an external command. The
// default is tea.ExecProcess.
type ExecFunc func(command *exec.Cmd, callback tea.ExecCallback) tea.Cmd

// ModelConfig holds the dependencies and settings of a Model.
type ModelConfig struct {
	// Context scopes every remote call started by the model. Cancel it
	// to abandon in-flight calls at shutdown. Defaults to
	// context.Background().
	Context context.Context

	// Directory serves listings and actions. Required.
	Directory Directory

	// SaveUsername persists a new username. Required.
	SaveUsername func(username string) error

	// Username is the initial username for filtering and ssh.
	Username string

	// Workspaces is the initial list.
	Workspaces []surf.Workspace

	// InitialStatus, when set, is shown as an error on startup (the
	// initial fetch failure).
	InitialStatus string

	// Lines is the log tail shown in the log pane. Required.
	Lines *logtail.Ring

	// PostActionDelay is the settle time between an action and the
	// refresh that follows it.
	PostActionDelay time.Duration

	// StatusTTL is how long a status message stays visible.
	StatusTTL time.Duration

	// SSHCommand and SSHArgs build the ssh invocation:
	// SSHCommand SSHArgs... user@address.
	SSHCommand string
	SSHArgs    []string

	// Exec runs the ssh command. Defaults to tea.ExecProcess.
	Exec ExecFunc

	// Copy writes text to the clipboard. Defaults to OSC 52 on the
	// controlling terminal.
	Copy func(text string) error

	Theme  tui.Theme
	Keys   KeyMap
	Clock  clock.Clock
	Logger *slog.Logger
}

// refreshResultMsg delivers the outcome of a listing.
type refreshResultMsg struct {
	workspaces []surf.Workspace
	err        error
}

// actionFinishedMsg is sent once an action batch has been submitted
// and the settle delay has passed.
type actionFinishedMsg struct {
	action surf.Action
	report *surf.ActionReport
	err    error
}

// statusExpiredMsg clears the status message it was scheduled for.
// A newer message has a higher sequence and survives.
type statusExpiredMsg struct {
	sequence int
}

// sshFinishedMsg is sent when the ssh hand-off returns.
type sshFinishedMsg struct {
	destination string
	err         error
}

// copyFinishedMsg is sent after a clipboard write.
type copyFinishedMsg struct {
	text string
	err  error
}

// logUpdatedMsg tells the program the log tail changed and the view
// should be redrawn.
type logUpdatedMsg struct{}

// Model is the bubbletea model for the workspace dashboard.
type Model struct {
	ctx          context.Context
	directory    Directory
	saveUsername func(string) error
	lines        *logtail.Ring
	exec         ExecFunc
	copy         func(string) error
	clock        clock.Clock
	logger       *slog.Logger

	postActionDelay time.Duration
	statusTTL       time.Duration
	sshCommand      string
	sshArgs         []string

	keys     KeyMap
	renderer Renderer

	viewModel *ViewModel
	mode      Mode

	// statusSequence identifies the latest status message so stale
	// expiry ticks are ignored.
	statusSequence int

	// actionNote is appended to the next refresh status after an
	// action with per-target failures.
	actionNote string

	spinner spinner.Model
	input   textinput.Model

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
}

// NewModel creates the dashboard model.
func NewModel(config ModelConfig) Model {
	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}
	lines := config.Lines
	if lines == nil {
		lines = logtail.NewRing(DefaultLogRows)
	}
	execFunc := config.Exec
	if execFunc == nil {
		execFunc = tea.ExecProcess
	}
	copyFunc := config.Copy
	if copyFunc == nil {
		copyFunc = copyToClipboard
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	postActionDelay := config.PostActionDelay
	if postActionDelay == 0 {
		postActionDelay = DefaultPostActionDelay
	}
	statusTTL := config.StatusTTL
	if statusTTL == 0 {
		statusTTL = DefaultStatusTTL
	}
	sshCommand := config.SSHCommand
	if sshCommand == "" {
		sshCommand = "ssh"
	}
	theme := config.Theme
	if theme == (tui.Theme{}) {
		theme = tui.DefaultTheme
	}
	keys := config.Keys
	if len(keys.Quit.Keys()) == 0 {
		keys = DefaultKeyMap
	}

	input := textinput.New()
	input.Placeholder = "username"
	input.CharLimit = 64
	input.Width = 30

	model := Model{
		ctx:             ctx,
		directory:       config.Directory,
		saveUsername:    config.SaveUsername,
		lines:           lines,
		exec:            execFunc,
		copy:            copyFunc,
		clock:           clk,
		logger:          logger,
		postActionDelay: postActionDelay,
		statusTTL:       statusTTL,
		sshCommand:      sshCommand,
		sshArgs:         config.SSHArgs,
		keys:            keys,
		renderer:        Renderer{Theme: theme, LogRows: lines.Capacity()},
		viewModel:       NewViewModel(1),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:           input,
	}
	model.viewModel.Username = config.Username
	model.viewModel.ReplaceWorkspaces(config.Workspaces)
	if config.InitialStatus != "" {
		model.viewModel.SetError(config.InitialStatus, statusTTL)
		model.statusSequence = 1
	}
	return model
}

// ViewModel returns the dashboard state. Intended for tests and for
// callers inspecting the final state after the program exits.
func (model Model) ViewModel() *ViewModel { return model.viewModel }

// Mode returns the current input mode.
func (model Model) Mode() Mode { return model.mode }

// Init implements tea.Model. Schedules expiry of the initial status.
func (model Model) Init() tea.Cmd {
	if model.viewModel.Status() == nil {
		return nil
	}
	return model.expireStatusAfter(model.statusSequence)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch model.mode {
		case ModeBusy:
			if key.Matches(message, model.keys.Quit) {
				return model, tea.Quit
			}
			return model, nil
		case ModeRenaming:
			return model.handleRenameKeys(message)
		default:
			return model.handleBrowseKeys(message)
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.updatePageSize()

	case refreshResultMsg:
		return model.handleRefreshResult(message)

	case actionFinishedMsg:
		return model.handleActionFinished(message)

	case statusExpiredMsg:
		// Keep the in-flight message visible until the call returns.
		if message.sequence == model.statusSequence && model.mode != ModeBusy {
			model.viewModel.ClearStatus()
		}

	case sshFinishedMsg:
		if message.err != nil {
			model.logger.Warn("ssh session failed", "destination", message.destination, "error", message.err)
			return model, model.setError(fmt.Sprintf("ssh to %s failed: %v", message.destination, message.err))
		}
		model.logger.Info("ssh session ended", "destination", message.destination)
		return model, model.setStatus(fmt.Sprintf("ssh session to %s ended", message.destination))

	case copyFinishedMsg:
		if message.err != nil {
			return model, model.setError(fmt.Sprintf("copy failed: %v", message.err))
		}
		return model, model.setStatus("Copied " + message.text)

	case logRecordMsg:
		return model, model.setError(message.Summary)

	case logUpdatedMsg:
		// Redraw only; View reads the ring.

	case spinner.TickMsg:
		if model.mode != ModeBusy {
			return model, nil
		}
		var command tea.Cmd
		model.spinner, command = model.spinner.Update(message)
		return model, command
	}
	return model, nil
}

func (model Model) handleBrowseKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	viewModel := model.viewModel

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Down):
		viewModel.MoveCursor(1)

	case key.Matches(message, model.keys.Up):
		viewModel.MoveCursor(-1)

	case key.Matches(message, model.keys.PageDown):
		viewModel.JumpPage(1)

	case key.Matches(message, model.keys.PageUp):
		viewModel.JumpPage(-1)

	case key.Matches(message, model.keys.Select):
		viewModel.ToggleSelectionAt(viewModel.Cursor())

	case key.Matches(message, model.keys.SelectAll):
		viewModel.ToggleSelectAll()

	case key.Matches(message, model.keys.Filter):
		viewModel.FilterActive = !viewModel.FilterActive
		label := "off"
		if viewModel.FilterActive {
			label = "on"
		}
		return model.startRefresh(fmt.Sprintf("Filter %s, updating VM list", label))

	case key.Matches(message, model.keys.Refresh):
		return model.startRefresh("Updating VM list")

	case key.Matches(message, model.keys.Pause):
		return model.startAction(surf.ActionPause, "Pausing")

	case key.Matches(message, model.keys.Resume):
		return model.startAction(surf.ActionResume, "Resuming")

	case key.Matches(message, model.keys.Rename):
		model.mode = ModeRenaming
		model.input.SetValue("")
		return model, model.input.Focus()

	case key.Matches(message, model.keys.Logs):
		viewModel.ShowLogs = !viewModel.ShowLogs
		model.updatePageSize()

	case key.Matches(message, model.keys.SSH):
		return model.startSSH()

	case key.Matches(message, model.keys.Copy):
		return model.startCopy()
	}
	return model, nil
}

func (model Model) handleRenameKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.Cancel):
		model.mode = ModeBrowsing
		model.input.Blur()
		return model, nil

	case key.Matches(message, model.keys.Confirm):
		model.mode = ModeBrowsing
		model.input.Blur()

		username := strings.TrimSpace(model.input.Value())
		if username == "" {
			return model, nil
		}
		if err := model.saveUsername(username); err != nil {
			model.logger.Warn("saving username failed", "error", err)
			return model, model.setError(fmt.Sprintf("could not save username: %v", err))
		}
		model.viewModel.Username = username
		model.logger.Info("username changed", "username", username)
		if model.viewModel.FilterActive {
			return model.startRefresh(fmt.Sprintf("Username set to %s, updating VM list", username))
		}
		return model, model.setStatus(fmt.Sprintf("Username set to %s", username))
	}

	var command tea.Cmd
	model.input, command = model.input.Update(message)
	return model, command
}

// startRefresh enters busy mode and fetches the list with the current
// filter.
func (model Model) startRefresh(status string) (tea.Model, tea.Cmd) {
	model.mode = ModeBusy
	statusCommand := model.setStatus(status)
	return model, tea.Batch(statusCommand, model.fetch(), model.spinner.Tick)
}

// fetch returns a command that lists workspaces with the current
// filter.
func (model Model) fetch() tea.Cmd {
	ctx := model.ctx
	directory := model.directory
	username := ""
	if model.viewModel.FilterActive {
		username = model.viewModel.Username
	}
	return func() tea.Msg {
		workspaces, err := directory.List(ctx, username)
		return refreshResultMsg{workspaces: workspaces, err: err}
	}
}

// RefreshFailureStatus is the status text for a failed listing, with a
// hint for rejected tokens and server-side failures.
func RefreshFailureStatus(err error) string {
	text := fmt.Sprintf("refresh failed: %v", err)
	switch {
	case surf.IsAuthRejected(err):
		text += " (check your API token)"
	case surf.IsServerError(err):
		text += " (server error, retry later)"
	}
	return text
}

func (model Model) handleRefreshResult(message refreshResultMsg) (tea.Model, tea.Cmd) {
	model.mode = ModeBrowsing
	note := model.actionNote
	model.actionNote = ""

	if message.err != nil {
		kind := surf.Classify(message.err)
		model.logger.Warn("workspace refresh failed", "error", message.err, "kind", kind.String())
		return model, model.setError(RefreshFailureStatus(message.err))
	}

	model.viewModel.ReplaceWorkspaces(message.workspaces)
	text := fmt.Sprintf("Updated VM list (%d workspaces)", len(message.workspaces))
	if note != "" {
		text += "; " + note
	}
	return model, model.setStatus(text)
}

// startAction submits action for the selected workspaces, waits for
// the settle delay and then refreshes.
func (model Model) startAction(action surf.Action, verb string) (tea.Model, tea.Cmd) {
	names := model.viewModel.SelectedNames()
	if len(names) == 0 {
		return model, model.setError("no VMs selected")
	}

	model.mode = ModeBusy
	statusCommand := model.setStatus(fmt.Sprintf("%s %v", verb, names))
	model.logger.Info("submitting workspace action", "action", string(action), "workspaces", names)

	ctx := model.ctx
	directory := model.directory
	snapshot := model.viewModel.Workspaces()
	clk := model.clock
	delay := model.postActionDelay

	invoke := func() tea.Msg {
		report, err := directory.Invoke(ctx, action, names, snapshot)
		if err == nil {
			select {
			case <-ctx.Done():
			case <-clk.After(delay):
			}
		}
		return actionFinishedMsg{action: action, report: report, err: err}
	}
	return model, tea.Batch(statusCommand, invoke, model.spinner.Tick)
}

func (model Model) handleActionFinished(message actionFinishedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.mode = ModeBrowsing
		model.logger.Warn("workspace action failed", "action", string(message.action), "error", message.err)
		return model, model.setError(fmt.Sprintf("%s failed: %v", message.action, message.err))
	}

	if message.report != nil {
		if failed := message.report.FailedNames(); len(failed) > 0 {
			model.actionNote = fmt.Sprintf("%s failed for %v", message.action, failed)
		}
	}
	return model, model.fetch()
}

// sshDestination returns user@address, or the bare address when no
// username is set.
func (model Model) sshDestination(workspace surf.Workspace) string {
	if model.viewModel.Username == "" {
		return workspace.IP
	}
	return model.viewModel.Username + "@" + workspace.IP
}

func (model Model) startSSH() (tea.Model, tea.Cmd) {
	selected := model.viewModel.SelectedWorkspaces()
	if len(selected) != 1 {
		return model, model.setError("select exactly one VM to ssh into")
	}
	target := selected[0]
	if target.IP == "" {
		return model, model.setError(fmt.Sprintf("no address available for %s", target.Name))
	}

	destination := model.sshDestination(target)
	arguments := append(append([]string(nil), model.sshArgs...), destination)
	command := exec.Command(model.sshCommand, arguments...)
	model.logger.Info("starting ssh session", "workspace", target.Name, "destination", destination)

	return model, model.exec(command, func(err error) tea.Msg {
		return sshFinishedMsg{destination: destination, err: err}
	})
}

func (model Model) startCopy() (tea.Model, tea.Cmd) {
	workspace, ok := model.viewModel.CursorWorkspace()
	if !ok {
		return model, nil
	}
	if workspace.IP == "" {
		return model, model.setError(fmt.Sprintf("no address available for %s", workspace.Name))
	}
	text := model.sshDestination(workspace)
	copyFunc := model.copy
	return model, func() tea.Msg {
		return copyFinishedMsg{text: text, err: copyFunc(text)}
	}
}

// copyToClipboard writes text to the system clipboard with an OSC 52
// escape on the controlling terminal, bypassing bubbletea's output.
func copyToClipboard(text string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer tty.Close()
	termenv.NewOutput(tty).Copy(text)
	return nil
}

// setStatus shows text and returns the command that expires it.
func (model *Model) setStatus(text string) tea.Cmd {
	model.viewModel.SetStatus(text, model.statusTTL)
	model.statusSequence++
	return model.expireStatusAfter(model.statusSequence)
}

// setError shows text as a failure and returns the command that
// expires it.
func (model *Model) setError(text string) tea.Cmd {
	model.viewModel.SetError(text, model.statusTTL)
	model.statusSequence++
	return model.expireStatusAfter(model.statusSequence)
}

func (model Model) expireStatusAfter(sequence int) tea.Cmd {
	return tea.Tick(model.statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{sequence: sequence}
	})
}

func (model *Model) updatePageSize() {
	model.viewModel.SetPageSize(PageSizeFor(model.height, model.viewModel.ShowLogs, model.renderer.LogRows))
}

// View implements tea.Model.
func (model Model) View() string {
	if model.width == 0 || model.height == 0 {
		return ""
	}

	frame := Frame{
		LogLines: model.lines.Lines(),
		Help:     model.keys,
	}
	if model.mode == ModeBusy {
		frame.Activity = model.spinner.View()
	}
	if model.mode == ModeRenaming {
		frame.Prompt = model.input.View()
		frame.Help = renameHelp{keys: model.keys}
	}
	return model.renderer.Render(model.viewModel, frame, model.width, model.height).String()
}
