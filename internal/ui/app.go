package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/ReviewRadar/internal/aggregate"
	"github.com/yildizm/ReviewRadar/internal/logger"
	"github.com/yildizm/ReviewRadar/internal/viewmodel"
)

// DefaultNoticeTTL is how long a notice stays on screen
const DefaultNoticeTTL = 4 * time.Second

// maxCards bounds the result cards rendered at once
const maxCards = 8

// focusTarget is the input receiving key presses
type focusTarget int

const (
	focusNone focusTarget = iota
	focusURL
	focusText
	focusRating
)

// CompletionFunc observes every finished submission
type CompletionFunc func(eff viewmodel.Effect, ev viewmodel.Event)

// Options configures the interactive model
type Options struct {
	Buckets    int
	Policy     aggregate.OverflowPolicy
	NoticeTTL  time.Duration
	Logger     *logger.Logger
	OnComplete CompletionFunc
}

// Model is the interactive review analysis screen
type Model struct {
	ctx     context.Context
	store   *viewmodel.Store
	runner  *viewmodel.Runner
	opts    Options
	log     *logger.Logger
	styles  *Styles
	state   viewmodel.State
	updates <-chan viewmodel.State
	cancel  func()

	urlInput    textinput.Model
	ratingInput textinput.Model
	reviewInput textarea.Model
	focus       focusTarget

	width        int
	height       int
	ready        bool
	quitting     bool
	spinnerFrame int

	noticeToken  int
	noticeActive bool
}

// Animation frames for in-flight submissions
var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewModel creates the interactive model around a store and its runner
func NewModel(ctx context.Context, store *viewmodel.Store, runner *viewmodel.Runner, opts Options) *Model {
	if opts.Buckets == 0 {
		opts.Buckets = aggregate.DefaultBuckets
	}
	if opts.Policy == "" {
		opts.Policy = aggregate.OverflowClamp
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = DefaultNoticeTTL
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	urlInput := textinput.New()
	urlInput.Placeholder = "https://www.example.com/product/123"
	urlInput.Prompt = ""
	urlInput.CharLimit = 2048
	urlInput.Width = 60

	ratingInput := textinput.New()
	ratingInput.Placeholder = "1-5"
	ratingInput.Prompt = ""
	ratingInput.CharLimit = 3
	ratingInput.Width = 5

	reviewInput := textarea.New()
	reviewInput.Placeholder = "Paste or type a review..."
	reviewInput.ShowLineNumbers = false
	reviewInput.CharLimit = 5000
	reviewInput.SetWidth(60)
	reviewInput.SetHeight(4)

	updates, cancel := store.Subscribe()

	m := &Model{
		ctx:         ctx,
		store:       store,
		runner:      runner,
		opts:        opts,
		log:         opts.Logger.WithComponent("ui"),
		styles:      GetStyles(),
		state:       store.Snapshot(),
		updates:     updates,
		cancel:      cancel,
		urlInput:    urlInput,
		ratingInput: ratingInput,
		reviewInput: reviewInput,
	}
	m.syncInputs()
	return m
}

// State returns the snapshot the model currently renders
func (m *Model) State() viewmodel.State {
	return m.state
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.updates),
		tick(),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case storeChangedMsg:
		m.refresh()
		return m, tea.Batch(waitForSnapshot(m.updates), m.scheduleNotice())
	case submissionDoneMsg:
		return m.handleSubmissionDone(msg)
	case dismissNoticeMsg:
		return m.handleNoticeExpired(msg)
	}

	return m, m.updateFocused(msg)
}

// handleWindowResize handles window resize events
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	inputWidth := min(max(msg.Width-10, 20), 100)
	m.urlInput.Width = inputWidth
	m.reviewInput.SetWidth(inputWidth)
	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.handleQuit()
	case "ctrl+n":
		return m.switchMode(m.otherMode())
	case "ctrl+t":
		return m.cycleThreshold()
	case "ctrl+s":
		return m.submit()
	case "ctrl+x":
		return m.clearAll()
	case "tab":
		return m.cycleFocus(1)
	case "shift+tab":
		return m.cycleFocus(-1)
	case "esc":
		return m.setFocus(focusNone)
	case "enter":
		// the review textarea takes enter as a newline
		if m.focus != focusText {
			return m.submit()
		}
	}

	if m.focus != focusNone {
		return m, m.updateFocused(msg)
	}

	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "1":
		return m.switchMode(viewmodel.ModeAutomatic)
	case "2":
		return m.switchMode(viewmodel.ModeManual)
	case "t":
		return m.cycleThreshold()
	case "c":
		return m.clearAll()
	case "d":
		return m.dismissNotice()
	case "i", "/":
		return m.cycleFocus(1)
	}
	return m, nil
}

// handleQuit handles quit commands
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

// handleTick handles timer ticks
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.state.AutoInFlight || m.state.ManualInFlight {
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
	}
	return m, tick()
}

// handleSubmissionDone forwards the finished submission to the observer
func (m *Model) handleSubmissionDone(msg submissionDoneMsg) (tea.Model, tea.Cmd) {
	if m.opts.OnComplete != nil {
		m.opts.OnComplete(msg.effect, msg.event)
	}
	m.refresh()
	return m, m.scheduleNotice()
}

// handleNoticeExpired dismisses the notice the timer was started for
func (m *Model) handleNoticeExpired(msg dismissNoticeMsg) (tea.Model, tea.Cmd) {
	if msg.token != m.noticeToken || !m.noticeActive {
		return m, nil
	}
	return m.dismissNotice()
}

func (m *Model) dismissNotice() (tea.Model, tea.Cmd) {
	if _, ok := m.state.Notice(); !ok {
		return m, nil
	}
	m.noticeActive = false
	m.noticeToken++
	m.dispatch(viewmodel.DismissNotice{})
	return m, m.scheduleNotice()
}

// scheduleNotice starts the expiry timer for the head notice
func (m *Model) scheduleNotice() tea.Cmd {
	if m.noticeActive {
		return nil
	}
	if _, ok := m.state.Notice(); !ok {
		return nil
	}
	m.noticeActive = true
	return expireNotice(m.opts.NoticeTTL, m.noticeToken)
}

func (m *Model) otherMode() viewmodel.Mode {
	if m.state.Mode == viewmodel.ModeManual {
		return viewmodel.ModeAutomatic
	}
	return viewmodel.ModeManual
}

func (m *Model) switchMode(mode viewmodel.Mode) (tea.Model, tea.Cmd) {
	if mode == m.state.Mode {
		return m, nil
	}
	m.blurAll()
	m.dispatch(viewmodel.SelectMode{Mode: mode})
	return m, nil
}

func (m *Model) cycleThreshold() (tea.Model, tea.Cmd) {
	if m.state.Mode == viewmodel.ModeManual {
		m.dispatch(viewmodel.SetManualThreshold{Threshold: m.state.ManualThreshold.Next()})
	} else {
		m.dispatch(viewmodel.SetAutoThreshold{Threshold: m.state.AutoThreshold.Next()})
	}
	return m, nil
}

func (m *Model) clearAll() (tea.Model, tea.Cmd) {
	if m.state.Mode != viewmodel.ModeManual || !m.state.CanClear() {
		return m, nil
	}
	m.dispatch(viewmodel.ClearManual{})
	return m, nil
}

// submit dispatches the active mode's submission and runs its effect
func (m *Model) submit() (tea.Model, tea.Cmd) {
	if !m.state.CanSubmit() {
		return m, nil
	}

	var ev viewmodel.Event = viewmodel.SubmitAutomatic{}
	if m.state.Mode == viewmodel.ModeManual {
		ev = viewmodel.SubmitManual{}
	}

	eff := m.dispatch(ev)
	if eff == nil {
		if m.state.ValidationErr != nil {
			m.log.Debug("submission rejected: %s", m.state.ValidationErr.Message)
		}
		return m, m.scheduleNotice()
	}

	m.spinnerFrame = 0
	return m, tea.Batch(runEffect(m.ctx, m.store, m.runner, eff), m.scheduleNotice())
}

func (m *Model) focusOrder() []focusTarget {
	if m.state.Mode == viewmodel.ModeManual {
		return []focusTarget{focusNone, focusText, focusRating}
	}
	return []focusTarget{focusNone, focusURL}
}

func (m *Model) cycleFocus(step int) (tea.Model, tea.Cmd) {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	next := (idx + step + len(order)) % len(order)
	return m.setFocus(order[next])
}

func (m *Model) setFocus(target focusTarget) (tea.Model, tea.Cmd) {
	m.blurAll()
	m.focus = target

	switch target {
	case focusURL:
		return m, m.urlInput.Focus()
	case focusText:
		return m, m.reviewInput.Focus()
	case focusRating:
		return m, m.ratingInput.Focus()
	}
	return m, nil
}

func (m *Model) blurAll() {
	m.urlInput.Blur()
	m.reviewInput.Blur()
	m.ratingInput.Blur()
	m.focus = focusNone
}

// updateFocused forwards a message to the focused input and publishes
// any change to the store
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch m.focus {
	case focusURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
		if v := m.urlInput.Value(); v != m.state.URL {
			m.dispatch(viewmodel.SetURL{Value: v})
		}
	case focusText:
		m.reviewInput, cmd = m.reviewInput.Update(msg)
		if v := m.reviewInput.Value(); v != m.state.ManualText {
			m.dispatch(viewmodel.SetManualText{Value: v})
		}
	case focusRating:
		m.ratingInput, cmd = m.ratingInput.Update(msg)
		if v := m.ratingInput.Value(); v != m.state.ManualRating {
			m.dispatch(viewmodel.SetManualRating{Value: v})
		}
	}

	return cmd
}

// dispatch applies an event and adopts the resulting snapshot
func (m *Model) dispatch(ev viewmodel.Event) viewmodel.Effect {
	eff := m.store.Dispatch(ev)
	m.refresh()
	return eff
}

// refresh adopts the latest snapshot. Subscription values may lag behind
// events dispatched from Update, so the store is read directly.
func (m *Model) refresh() {
	m.state = m.store.Snapshot()
	m.syncInputs()
}

// syncInputs mirrors state-driven input changes, such as the reset after
// a manual submission, into the widgets
func (m *Model) syncInputs() {
	if m.urlInput.Value() != m.state.URL {
		m.urlInput.SetValue(m.state.URL)
	}
	if m.reviewInput.Value() != m.state.ManualText {
		m.reviewInput.SetValue(m.state.ManualText)
	}
	if m.ratingInput.Value() != m.state.ManualRating {
		m.ratingInput.SetValue(m.state.ManualRating)
	}
}
