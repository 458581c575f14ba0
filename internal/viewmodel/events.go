package viewmodel

import "github.com/yildizm/ReviewRadar/internal/review"

// Event is a user action or a submission outcome
type Event interface {
	isEvent()
}

// SelectMode switches the active input mode
type SelectMode struct{ Mode Mode }

// SetURL updates the pending product URL
type SetURL struct{ Value string }

// SetAutoThreshold updates the automatic mode tier
type SetAutoThreshold struct{ Threshold review.Threshold }

// SetManualText updates the pending review body
type SetManualText struct{ Value string }

// SetManualRating updates the raw rating input
type SetManualRating struct{ Value string }

// SetManualThreshold updates the manual mode tier
type SetManualThreshold struct{ Threshold review.Threshold }

// SubmitAutomatic requests analysis of the pending URL
type SubmitAutomatic struct{}

// SubmitManual requests analysis of the pending review
type SubmitManual struct{}

// AutomaticSucceeded carries the reviews for submission Gen
type AutomaticSucceeded struct {
	Gen     uint64
	Reviews []review.Review
}

// AutomaticFailed carries the failure for submission Gen
type AutomaticFailed struct {
	Gen uint64
	Err error
}

// ManualSucceeded carries the analyzed review
type ManualSucceeded struct{ Review review.Review }

// ManualFailed carries the failure of a manual submission
type ManualFailed struct{ Err error }

// ClearManual empties the accumulated manual results
type ClearManual struct{}

// DismissNotice drops the oldest notice
type DismissNotice struct{}

func (SelectMode) isEvent()         {}
func (SetURL) isEvent()             {}
func (SetAutoThreshold) isEvent()   {}
func (SetManualText) isEvent()      {}
func (SetManualRating) isEvent()    {}
func (SetManualThreshold) isEvent() {}
func (SubmitAutomatic) isEvent()    {}
func (SubmitManual) isEvent()       {}
func (AutomaticSucceeded) isEvent() {}
func (AutomaticFailed) isEvent()    {}
func (ManualSucceeded) isEvent()    {}
func (ManualFailed) isEvent()       {}
func (ClearManual) isEvent()        {}
func (DismissNotice) isEvent()      {}

// Effect is a submission the caller must perform
type Effect interface {
	isEffect()
}

// AnalyzeURL asks the service to analyze a product page
type AnalyzeURL struct {
	URL       string
	Threshold review.Threshold
	Gen       uint64
}

// AnalyzeText asks the service to analyze one review
type AnalyzeText struct {
	Text      string
	Rating    string
	Threshold review.Threshold
}

func (AnalyzeURL) isEffect()  {}
func (AnalyzeText) isEffect() {}
