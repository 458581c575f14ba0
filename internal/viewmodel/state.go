package viewmodel

import (
	"github.com/yildizm/ReviewRadar/internal/aggregate"
	"github.com/yildizm/ReviewRadar/internal/review"
)

// Mode is the active input mode
type Mode int

const (
	ModeNone Mode = iota
	ModeAutomatic
	ModeManual
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeAutomatic:
		return "automatic"
	case ModeManual:
		return "manual"
	default:
		return "none"
	}
}

// MaxNotices bounds the notice queue; the oldest notice is evicted first
const MaxNotices = 5

// NoticeLevel classifies a notice
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message for the user
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

// State is one immutable snapshot of the session. Transitions never mutate
// the slices of a previous snapshot.
type State struct {
	Mode Mode

	// automatic mode input
	URL           string
	AutoThreshold review.Threshold

	// manual mode input
	ManualText      string
	ManualRating    string
	ManualThreshold review.Threshold

	// DefaultThreshold is the manual fallback when no tier is selected
	DefaultThreshold review.Threshold

	AutoInFlight   bool
	ManualInFlight bool

	// ValidationErr is the last inline validation failure, if any
	ValidationErr *review.ValidationError

	AutoResults   []review.Review
	ManualResults []review.Review

	Notices []Notice

	// autoGen increments on every automatic submission and mode switch
	// so late responses can be recognised
	autoGen uint64
}

// NewState returns the initial session state: automatic mode, nothing entered
func NewState(defaultThreshold review.Threshold) State {
	if !defaultThreshold.IsSet() {
		defaultThreshold = review.DefaultManualThreshold
	}
	return State{
		Mode:             ModeAutomatic,
		DefaultThreshold: defaultThreshold,
	}
}

// Results returns the result list of the active mode
func (s State) Results() []review.Review {
	if s.Mode == ModeManual {
		return s.ManualResults
	}
	return s.AutoResults
}

// InFlight reports whether the active mode has a pending submission
func (s State) InFlight() bool {
	if s.Mode == ModeManual {
		return s.ManualInFlight
	}
	return s.AutoInFlight
}

// CanSubmit reports whether the submit control of the active mode is enabled
func (s State) CanSubmit() bool {
	return !s.InFlight()
}

// CanClear reports whether "clear all" is available
func (s State) CanClear() bool {
	return len(s.ManualResults) > 0
}

// EffectiveManualThreshold returns the tier a manual submission would use
func (s State) EffectiveManualThreshold() review.Threshold {
	if s.ManualThreshold.IsSet() {
		return s.ManualThreshold
	}
	if s.DefaultThreshold.IsSet() {
		return s.DefaultThreshold
	}
	return review.DefaultManualThreshold
}

// RatingSummary aggregates the active result list by rating
func (s State) RatingSummary() aggregate.RatingSummary {
	return aggregate.RatingDistribution(s.Results())
}

// Histogram aggregates the active result list by confidence
func (s State) Histogram(buckets int, policy aggregate.OverflowPolicy) (aggregate.Histogram, error) {
	return aggregate.ConfidenceHistogram(s.Results(), buckets, policy)
}

// Notice returns the oldest pending notice
func (s State) Notice() (Notice, bool) {
	if len(s.Notices) == 0 {
		return Notice{}, false
	}
	return s.Notices[0], true
}

func (s State) withNotice(n Notice) State {
	notices := make([]Notice, 0, MaxNotices)
	start := 0
	if len(s.Notices) >= MaxNotices {
		start = len(s.Notices) - MaxNotices + 1
	}
	notices = append(notices, s.Notices[start:]...)
	s.Notices = append(notices, n)
	return s
}
