package viewmodel

import (
	"errors"
	"fmt"

	"github.com/yildizm/ReviewRadar/internal/review"
	"github.com/yildizm/ReviewRadar/internal/service"
)

// Notice titles
const (
	TitleAnalysisComplete = "Analysis complete"
	TitleAnalysisFailed   = "Analysis failed"
	TitleMissingInput     = "Missing input"
)

// Reduce applies one event to a snapshot and returns the next snapshot plus
// the submission to perform, if any. It has no side effects.
func Reduce(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case SelectMode:
		return selectMode(s, ev.Mode), nil
	case SetURL:
		s.URL = ev.Value
		s.ValidationErr = nil
		return s, nil
	case SetAutoThreshold:
		s.AutoThreshold = ev.Threshold
		s.ValidationErr = nil
		return s, nil
	case SetManualText:
		s.ManualText = ev.Value
		s.ValidationErr = nil
		return s, nil
	case SetManualRating:
		s.ManualRating = ev.Value
		s.ValidationErr = nil
		return s, nil
	case SetManualThreshold:
		s.ManualThreshold = ev.Threshold
		return s, nil
	case SubmitAutomatic:
		return submitAutomatic(s)
	case SubmitManual:
		return submitManual(s)
	case AutomaticSucceeded:
		return automaticSucceeded(s, ev), nil
	case AutomaticFailed:
		return automaticFailed(s, ev), nil
	case ManualSucceeded:
		return manualSucceeded(s, ev), nil
	case ManualFailed:
		s.ManualInFlight = false
		return s.withNotice(failureNotice(ev.Err)), nil
	case ClearManual:
		if len(s.ManualResults) > 0 {
			s.ManualResults = nil
		}
		return s, nil
	case DismissNotice:
		if len(s.Notices) > 0 {
			s.Notices = append([]Notice(nil), s.Notices[1:]...)
		}
		return s, nil
	default:
		return s, nil
	}
}

func selectMode(s State, mode Mode) State {
	if mode == s.Mode || (mode != ModeAutomatic && mode != ModeManual) {
		return s
	}
	s.Mode = mode
	s.AutoResults = nil
	s.ValidationErr = nil
	s.autoGen++
	return s
}

func submitAutomatic(s State) (State, Effect) {
	if s.AutoInFlight {
		return s, nil
	}

	url, err := review.ValidateURL(s.URL)
	if err == nil {
		err = review.ValidateThreshold(s.AutoThreshold)
	}
	if err != nil {
		return rejectInput(s, err, true), nil
	}

	s.ValidationErr = nil
	s.AutoInFlight = true
	s.AutoResults = nil
	s.autoGen++

	return s, AnalyzeURL{URL: url, Threshold: s.AutoThreshold, Gen: s.autoGen}
}

func submitManual(s State) (State, Effect) {
	if s.ManualInFlight {
		return s, nil
	}

	text, err := review.ValidateReviewText(s.ManualText)
	if err != nil {
		return rejectInput(s, err, false), nil
	}
	rating, err := review.NormalizeRating(s.ManualRating)
	if err != nil {
		return rejectInput(s, err, false), nil
	}

	s.ValidationErr = nil
	s.ManualInFlight = true

	return s, AnalyzeText{Text: text, Rating: rating, Threshold: s.EffectiveManualThreshold()}
}

func automaticSucceeded(s State, ev AutomaticSucceeded) State {
	s.AutoInFlight = false
	if ev.Gen != s.autoGen {
		return s
	}

	s.AutoResults = append([]review.Review(nil), ev.Reviews...)
	return s.withNotice(Notice{
		Level:   NoticeSuccess,
		Title:   TitleAnalysisComplete,
		Message: fmt.Sprintf("%d reviews analyzed", len(ev.Reviews)),
	})
}

func automaticFailed(s State, ev AutomaticFailed) State {
	s.AutoInFlight = false
	if ev.Gen != s.autoGen {
		return s
	}
	return s.withNotice(failureNotice(ev.Err))
}

func manualSucceeded(s State, ev ManualSucceeded) State {
	results := make([]review.Review, 0, len(s.ManualResults)+1)
	results = append(results, s.ManualResults...)
	s.ManualResults = append(results, ev.Review)

	s.ManualInFlight = false
	s.ManualText = ""
	s.ManualRating = ""

	return s.withNotice(Notice{
		Level:   NoticeSuccess,
		Title:   TitleAnalysisComplete,
		Message: fmt.Sprintf("Review classified %s", ev.Review.Verdict()),
	})
}

// rejectInput records a validation failure. Automatic mode also raises a
// blocking notice; manual mode reports inline only.
func rejectInput(s State, err error, blocking bool) State {
	var verr *review.ValidationError
	if !errors.As(err, &verr) {
		verr = review.NewValidationError("", err.Error())
	}
	s.ValidationErr = verr
	if blocking {
		s = s.withNotice(Notice{Level: NoticeWarning, Title: TitleMissingInput, Message: verr.Message})
	}
	return s
}

func failureNotice(err error) Notice {
	return Notice{
		Level:   NoticeError,
		Title:   TitleAnalysisFailed,
		Message: service.UserMessage(err),
	}
}
