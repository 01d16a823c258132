package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/csheth/newsguard/internal/checker"
	"github.com/csheth/newsguard/internal/history"
	"github.com/csheth/newsguard/internal/logging"
	"github.com/csheth/newsguard/internal/notify"
	"github.com/csheth/newsguard/internal/theme"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Controller    *checker.Controller
	Theme         *theme.Store
	HistoryPath   string
	ToastDuration time.Duration
	InitialText   string
	Logger        *log.Logger
}

// New returns a tea.Model ready to be mounted into a Program. The model
// registers itself with the theme store so toggles restyle it immediately.
func New(config Config) tea.Model {
	if config.Theme == nil {
		config.Theme = theme.Load(nil, theme.Options{Logger: config.Logger})
	}
	if config.ToastDuration <= 0 {
		config.ToastDuration = defaultToastDuration
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	input := textarea.New()
	input.Placeholder = inputPlaceholder
	input.ShowLineNumbers = false
	input.CharLimit = inputCharLimit
	input.SetHeight(inputHeight)
	input.SetWidth(maxContentWidth - horizontalPadding)
	input.KeyMap.InsertNewline.SetEnabled(false)
	if config.InitialText != "" {
		input.SetValue(config.InitialText)
	}
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &model{
		config:     config,
		controller: config.Controller,
		theme:      config.Theme,
		input:      input,
		spinner:    spin,
		jobs:       newJobBus(logger),
		logger:     logger.WithPrefix("tui"),
		width:      maxContentWidth,
		pending:    map[uint64]string{},
	}
	config.Theme.Attach(m)
	return m
}

type model struct {
	config     Config
	controller *checker.Controller
	theme      *theme.Store
	themeName  theme.Name
	styles     styles

	input   textarea.Model
	spinner spinner.Model
	jobs    *jobBus
	logger  *log.Logger

	toasts      []toast
	nextToastID int
	pending     map[uint64]string
	lastJob     jobSnapshot
	width       int
	quitting    bool
}

// ApplyTheme restyles the model; it is the model's theme.Applier hook.
func (m *model) ApplyTheme(name theme.Name) {
	m.themeName = name
	m.styles = newStyles(theme.PaletteFor(name))
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
		return m, nil
	case spinner.TickMsg:
		if m.controller.State().Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case jobSignalMsg:
		m.lastJob = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.lastJob = msg.Snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case checkResultMsg:
		return m, m.handleCheckResult(msg)
	case recordResultMsg:
		if msg.err != nil {
			m.logger.Error("failed to record history entry", "id", msg.entryID, "err", msg.err)
			return m, m.pushToasts(notify.Warning(historyFailureToast))
		}
		m.logger.Debug("history entry recorded", "id", msg.entryID)
		return m, nil
	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, m.quit()
	case tea.KeyCtrlT:
		m.theme.Toggle()
		return m, nil
	case tea.KeyEnter:
		if m.quitting {
			return m, nil
		}
		return m, m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// submit starts a check for the current input. Re-submitting while a check
// is outstanding is allowed; the controller decides which result wins.
func (m *model) submit() tea.Cmd {
	ticket, err := m.controller.Begin(m.input.Value())
	cmds := []tea.Cmd{m.drainNotifications()}
	if err != nil {
		return tea.Batch(cmds...)
	}
	m.pending[ticket.Token] = ticket.Request.Text
	cmds = append(cmds, m.spinner.Tick, m.jobs.Start(jobKindCheck, checkJob(m.controller, ticket)))
	return tea.Batch(cmds...)
}

func (m *model) handleCheckResult(msg checkResultMsg) tea.Cmd {
	headline := m.pending[msg.token]
	delete(m.pending, msg.token)
	err := m.controller.Finish(msg.token, msg.resp, msg.err)
	if errors.Is(err, checker.ErrDiscarded) {
		return nil
	}
	cmds := []tea.Cmd{m.drainNotifications()}
	state := m.controller.State()
	if m.config.HistoryPath != "" && !isRequestError(err) && state.Label != checker.LabelNone {
		entry := history.NewEntry(headline, state)
		cmds = append(cmds, m.jobs.Start(jobKindRecord, recordJob(m.config.HistoryPath, entry)))
	}
	return tea.Batch(cmds...)
}

func (m *model) quit() tea.Cmd {
	m.quitting = true
	m.controller.Retire()
	m.jobs.Stop()
	return tea.Quit
}

func (m *model) drainNotifications() tea.Cmd {
	return m.pushToasts(m.controller.Notifications()...)
}

func (m *model) pushToasts(notes ...notify.Notification) tea.Cmd {
	if len(notes) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(notes))
	for _, n := range notes {
		m.nextToastID++
		m.toasts = append(m.toasts, toast{id: m.nextToastID, note: n})
		cmds = append(cmds, expireToastCmd(m.nextToastID, m.config.ToastDuration))
	}
	if overflow := len(m.toasts) - maxVisibleToasts; overflow > 0 {
		m.toasts = append([]toast(nil), m.toasts[overflow:]...)
	}
	return tea.Batch(cmds...)
}

func (m *model) dropToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

func (m *model) resize(width int) {
	inner := width - horizontalPadding
	if inner > maxContentWidth {
		inner = maxContentWidth
	}
	if inner < minContentWidth {
		inner = minContentWidth
	}
	m.width = inner
	m.input.SetWidth(inner - horizontalPadding)
}
