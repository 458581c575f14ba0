package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/ReviewRadar/internal/viewmodel"
)

// Message types shared by the model
type (
	// tickMsg drives the spinner animation
	tickMsg time.Time

	// storeChangedMsg signals a new store snapshot
	storeChangedMsg struct{}

	// submissionDoneMsg reports a finished effect after its completion
	// event was dispatched
	submissionDoneMsg struct {
		effect viewmodel.Effect
		event  viewmodel.Event
	}

	// dismissNoticeMsg expires the notice shown under token
	dismissNoticeMsg struct {
		token int
	}
)

// tick schedules the next animation frame
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForSnapshot blocks until the subscription delivers a snapshot.
// It returns nil once the subscription is cancelled.
func waitForSnapshot(updates <-chan viewmodel.State) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// runEffect performs a submission and dispatches its completion event
func runEffect(ctx context.Context, store *viewmodel.Store, runner *viewmodel.Runner, eff viewmodel.Effect) tea.Cmd {
	return func() tea.Msg {
		ev := runner.Execute(ctx, eff)
		store.Dispatch(ev)
		return submissionDoneMsg{effect: eff, event: ev}
	}
}

// expireNotice schedules the dismissal of the current notice
func expireNotice(after time.Duration, token int) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return dismissNoticeMsg{token: token}
	})
}
