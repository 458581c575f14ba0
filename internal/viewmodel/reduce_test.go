package viewmodel

import (
	"errors"
	"testing"

	"github.com/yildizm/ReviewRadar/internal/review"
	"github.com/yildizm/ReviewRadar/internal/service"
)

func sampleReviews(n int) []review.Review {
	reviews := make([]review.Review, n)
	for i := range reviews {
		reviews[i] = review.Review{Text: "r", Confidence: float64(i * 20), Label: i%2 == 0, Rating: review.FormatRating(i%5 + 1)}
	}
	return reviews
}

func apply(t *testing.T, s State, events ...Event) State {
	t.Helper()
	for _, ev := range events {
		s, _ = Reduce(s, ev)
	}
	return s
}

func TestNewState(t *testing.T) {
	s := NewState(review.ThresholdUnset)
	if s.Mode != ModeAutomatic {
		t.Errorf("expected automatic mode, got %s", s.Mode)
	}
	if s.DefaultThreshold != review.ThresholdAverage {
		t.Errorf("expected average fallback, got %s", s.DefaultThreshold)
	}
	if len(s.Results()) != 0 || s.InFlight() || s.CanClear() {
		t.Errorf("unexpected initial state %+v", s)
	}
}

func TestReduce_SubmitAutomatic(t *testing.T) {
	s := apply(t, NewState(review.ThresholdUnset),
		SetURL{Value: "  https://shop.test/p/1 "},
		SetAutoThreshold{Threshold: review.ThresholdStrict},
	)

	next, eff := Reduce(s, SubmitAutomatic{})
	req, ok := eff.(AnalyzeURL)
	if !ok {
		t.Fatalf("expected AnalyzeURL effect, got %#v", eff)
	}
	if req.URL != "https://shop.test/p/1" || req.Threshold != review.ThresholdStrict {
		t.Errorf("unexpected effect %+v", req)
	}
	if !next.AutoInFlight || next.CanSubmit() {
		t.Error("expected submission in flight and submit disabled")
	}

	// a second trigger while in flight is ignored
	again, eff := Reduce(next, SubmitAutomatic{})
	if eff != nil {
		t.Errorf("expected no effect while in flight, got %#v", eff)
	}
	if !again.AutoInFlight {
		t.Error("in-flight flag lost")
	}
}

func TestReduce_AutomaticValidation(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		threshold review.Threshold
		wantMsg   string
	}{
		{"empty url", "", review.ThresholdLenient, review.MsgMissingURL},
		{"blank url", "   ", review.ThresholdLenient, review.MsgMissingURL},
		{"missing threshold", "https://shop.test", review.ThresholdUnset, review.MsgMissingThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := apply(t, NewState(review.ThresholdUnset), SetURL{Value: tt.url}, SetAutoThreshold{Threshold: tt.threshold})

			next, eff := Reduce(s, SubmitAutomatic{})
			if eff != nil {
				t.Fatalf("expected no request, got %#v", eff)
			}
			if next.ValidationErr == nil || next.ValidationErr.Message != tt.wantMsg {
				t.Errorf("expected %q, got %+v", tt.wantMsg, next.ValidationErr)
			}
			if n, ok := next.Notice(); !ok || n.Level != NoticeWarning {
				t.Errorf("expected blocking warning notice, got %+v", n)
			}
			if next.AutoInFlight {
				t.Error("should not be in flight")
			}
		})
	}
}

func TestReduce_AutomaticSuccessReplacesResults(t *testing.T) {
	s := apply(t, NewState(review.ThresholdUnset), SetURL{Value: "https://shop.test"}, SetAutoThreshold{Threshold: review.ThresholdAverage})

	s, eff := Reduce(s, SubmitAutomatic{})
	s = apply(t, s, AutomaticSucceeded{Gen: eff.(AnalyzeURL).Gen, Reviews: sampleReviews(3)})

	s, eff = Reduce(s, SubmitAutomatic{})
	if len(s.AutoResults) != 0 {
		t.Errorf("expected results cleared on new submission, got %d", len(s.AutoResults))
	}
	s = apply(t, s, AutomaticSucceeded{Gen: eff.(AnalyzeURL).Gen, Reviews: sampleReviews(4)})

	if got := len(s.Results()); got != 4 {
		t.Fatalf("expected exactly 4 results, got %d", got)
	}
	if s.AutoInFlight {
		t.Error("in-flight flag not cleared")
	}
	n, _ := s.Notice()
	if n.Level != NoticeSuccess {
		t.Errorf("expected success notice, got %+v", n)
	}
}

func TestReduce_AutomaticFailure(t *testing.T) {
	s := apply(t, NewState(review.ThresholdUnset), SetURL{Value: "https://shop.test"}, SetAutoThreshold{Threshold: review.ThresholdAverage})
	s, eff := Reduce(s, SubmitAutomatic{})

	s = apply(t, s, AutomaticFailed{Gen: eff.(AnalyzeURL).Gen, Err: service.NewStatusError(400, "No reviews found")})

	if s.AutoInFlight {
		t.Error("in-flight flag not cleared")
	}
	if len(s.AutoResults) != 0 {
		t.Error("failure must not populate results")
	}
	n, ok := s.Notice()
	if !ok || n.Level != NoticeError || n.Message != "No reviews found" {
		t.Errorf("unexpected notice %+v", n)
	}
}

func TestReduce_StaleAutomaticResponse(t *testing.T) {
	s := apply(t, NewState(review.ThresholdUnset), SetURL{Value: "https://shop.test"}, SetAutoThreshold{Threshold: review.ThresholdAverage})
	s, eff := Reduce(s, SubmitAutomatic{})
	gen := eff.(AnalyzeURL).Gen

	s = apply(t, s, SelectMode{Mode: ModeManual}, SelectMode{Mode: ModeAutomatic})
	s = apply(t, s, AutomaticSucceeded{Gen: gen, Reviews: sampleReviews(2)})

	if len(s.AutoResults) != 0 {
		t.Errorf("stale response populated results: %d", len(s.AutoResults))
	}
	if s.AutoInFlight {
		t.Error("stale response must still clear in-flight flag")
	}
	if len(s.Notices) != 0 {
		t.Errorf("stale response raised notices: %+v", s.Notices)
	}
}

func TestReduce_ModeSwitchClearsOnlyAutomatic(t *testing.T) {
	s := NewState(review.ThresholdUnset)
	s = apply(t, s,
		SelectMode{Mode: ModeManual},
		ManualSucceeded{Review: review.Review{Text: "a", Rating: "5/5", Label: true}},
		SelectMode{Mode: ModeAutomatic},
		SetURL{Value: "https://shop.test"},
		SetAutoThreshold{Threshold: review.ThresholdLenient},
	)
	s, eff := Reduce(s, SubmitAutomatic{})
	s = apply(t, s, AutomaticSucceeded{Gen: eff.(AnalyzeURL).Gen, Reviews: sampleReviews(4)})

	s = apply(t, s, SelectMode{Mode: ModeManual}, SelectMode{Mode: ModeAutomatic})

	if len(s.AutoResults) != 0 {
		t.Errorf("expected automatic results cleared, got %d", len(s.AutoResults))
	}
	if len(s.ManualResults) != 1 {
		t.Errorf("expected manual results kept, got %d", len(s.ManualResults))
	}
}

func TestReduce_SelectSameModeKeepsResults(t *testing.T) {
	s := NewState(review.ThresholdUnset)
	s.AutoResults = sampleReviews(2)

	s = apply(t, s, SelectMode{Mode: ModeAutomatic}, SelectMode{Mode: ModeNone})
	if len(s.AutoResults) != 2 || s.Mode != ModeAutomatic {
		t.Errorf("unexpected state after no-op selection: %+v", s)
	}
}

func TestReduce_SubmitManual(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		rating        string
		threshold     review.Threshold
		wantMsg       string
		wantRating    string
		wantThreshold review.Threshold
	}{
		{name: "valid", text: "Great phone", rating: "4", threshold: review.ThresholdStrict, wantRating: "4/5", wantThreshold: review.ThresholdStrict},
		{name: "threshold fallback", text: "ok", rating: " 1 ", wantRating: "1/5", wantThreshold: review.ThresholdAverage},
		{name: "rating out of range", text: "Great phone", rating: "7", wantMsg: review.MsgInvalidRating},
		{name: "rating zero", text: "Great phone", rating: "0", wantMsg: review.MsgInvalidRating},
		{name: "rating text", text: "Great phone", rating: "five", wantMsg: review.MsgInvalidRating},
		{name: "empty text", text: "  ", rating: "3", wantMsg: review.MsgEmptyReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := apply(t, NewState(review.ThresholdUnset),
				SelectMode{Mode: ModeManual},
				SetManualText{Value: tt.text},
				SetManualRating{Value: tt.rating},
				SetManualThreshold{Threshold: tt.threshold},
			)

			next, eff := Reduce(s, SubmitManual{})

			if tt.wantMsg != "" {
				if eff != nil {
					t.Fatalf("expected no request, got %#v", eff)
				}
				if next.ValidationErr == nil || next.ValidationErr.Message != tt.wantMsg {
					t.Errorf("expected inline error %q, got %+v", tt.wantMsg, next.ValidationErr)
				}
				if len(next.Notices) != 0 {
					t.Errorf("manual validation should be inline only, got %+v", next.Notices)
				}
				return
			}

			req, ok := eff.(AnalyzeText)
			if !ok {
				t.Fatalf("expected AnalyzeText, got %#v", eff)
			}
			if req.Rating != tt.wantRating || req.Threshold != tt.wantThreshold {
				t.Errorf("unexpected effect %+v", req)
			}
			if !next.ManualInFlight {
				t.Error("expected manual submission in flight")
			}
		})
	}
}

func TestReduce_ManualAccumulates(t *testing.T) {
	s := apply(t, NewState(review.ThresholdUnset), SelectMode{Mode: ModeManual})

	for _, text := range []string{"first", "second"} {
		s = apply(t, s, SetManualText{Value: text}, SetManualRating{Value: "5"})
		var eff Effect
		s, eff = Reduce(s, SubmitManual{})
		req := eff.(AnalyzeText)
		s = apply(t, s, ManualSucceeded{Review: review.Review{Text: req.Text, Rating: req.Rating, Label: true}})

		if s.ManualText != "" || s.ManualRating != "" {
			t.Errorf("inputs not cleared after success: %q %q", s.ManualText, s.ManualRating)
		}
	}

	if len(s.ManualResults) != 2 {
		t.Fatalf("expected 2 results, got %d", len(s.ManualResults))
	}
	if s.ManualResults[0].Text != "first" || s.ManualResults[1].Text != "second" {
		t.Errorf("results out of submission order: %+v", s.ManualResults)
	}
}

func TestReduce_ManualFailureKeepsResults(t *testing.T) {
	s := apply(t, NewState(review.ThresholdUnset),
		SelectMode{Mode: ModeManual},
		ManualSucceeded{Review: review.Review{Text: "kept"}},
		SetManualText{Value: "next"},
		SetManualRating{Value: "2"},
	)
	s, _ = Reduce(s, SubmitManual{})
	s = apply(t, s, ManualFailed{Err: service.NewErrorWithCause(service.ErrTypeNetwork, "request failed", errors.New("refused"))})

	if len(s.ManualResults) != 1 || s.ManualInFlight {
		t.Errorf("unexpected state %+v", s)
	}
	if s.ManualText != "next" {
		t.Error("inputs must be kept on failure")
	}
	n := s.Notices[len(s.Notices)-1]
	if n.Message != service.MsgNetworkFailure {
		t.Errorf("unexpected notice %+v", n)
	}
}

func TestReduce_ClearManual(t *testing.T) {
	s := apply(t, NewState(review.ThresholdUnset),
		SelectMode{Mode: ModeManual},
		ManualSucceeded{Review: review.Review{Text: "a"}},
		ManualSucceeded{Review: review.Review{Text: "b"}},
	)
	if !s.CanClear() {
		t.Fatal("clear should be available")
	}

	next, eff := Reduce(s, ClearManual{})
	if eff != nil {
		t.Errorf("clear must not issue a request, got %#v", eff)
	}
	if len(next.ManualResults) != 0 || next.CanClear() {
		t.Errorf("expected empty list, got %d", len(next.ManualResults))
	}
	if len(s.ManualResults) != 2 {
		t.Error("previous snapshot was mutated")
	}
}

func TestReduce_SnapshotsAreIndependent(t *testing.T) {
	base := apply(t, NewState(review.ThresholdUnset), ManualSucceeded{Review: review.Review{Text: "a"}})
	left := apply(t, base, ManualSucceeded{Review: review.Review{Text: "left"}})
	right := apply(t, base, ManualSucceeded{Review: review.Review{Text: "right"}})

	if left.ManualResults[1].Text != "left" || right.ManualResults[1].Text != "right" {
		t.Errorf("snapshots share backing storage: %+v %+v", left.ManualResults, right.ManualResults)
	}
}

func TestReduce_NoticeQueue(t *testing.T) {
	s := NewState(review.ThresholdUnset)
	for i := 0; i < MaxNotices+2; i++ {
		s = apply(t, s, ManualFailed{Err: service.NewStatusError(500+i, "")})
	}
	if len(s.Notices) != MaxNotices {
		t.Fatalf("expected %d notices, got %d", MaxNotices, len(s.Notices))
	}
	n, _ := s.Notice()
	if n.Message != "Request failed with status 502" {
		t.Errorf("oldest notices not evicted first: %q", n.Message)
	}

	s = apply(t, s, DismissNotice{})
	if len(s.Notices) != MaxNotices-1 {
		t.Errorf("dismiss did not drop a notice")
	}
}

func TestState_Aggregates(t *testing.T) {
	s := NewState(review.ThresholdUnset)
	s.AutoResults = []review.Review{
		{Confidence: 10, Rating: "1/5"},
		{Confidence: 100, Rating: "5/5"},
	}
	s.ManualResults = []review.Review{{Confidence: 50, Rating: "3/5"}}

	if got := s.RatingSummary().Total; got != 2 {
		t.Errorf("expected automatic list aggregated, got total %d", got)
	}

	s = apply(t, s, SelectMode{Mode: ModeManual})
	h, err := s.Histogram(5, "clamp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Total() != 1 || h.Bins[2].Count != 1 {
		t.Errorf("unexpected histogram %+v", h)
	}
}
