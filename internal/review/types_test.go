package review

import "testing"

func TestThresholdValues(t *testing.T) {
	tests := []struct {
		threshold Threshold
		value     float64
		name      string
	}{
		{ThresholdLenient, 0.60, "lenient"},
		{ThresholdAverage, 0.70, "average"},
		{ThresholdStrict, 0.90, "strict"},
		{ThresholdUnset, 0, "unset"},
	}

	for _, tt := range tests {
		if got := tt.threshold.Value(); got != tt.value {
			t.Errorf("%s.Value() = %v, want %v", tt.name, got, tt.value)
		}
		if got := tt.threshold.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		input   string
		want    Threshold
		wantErr bool
	}{
		{"lenient", ThresholdLenient, false},
		{"AVERAGE", ThresholdAverage, false},
		{" strict ", ThresholdStrict, false},
		{"", ThresholdUnset, false},
		{"high", ThresholdUnset, true},
	}

	for _, tt := range tests {
		got, err := ParseThreshold(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseThreshold(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseThreshold(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestThresholdNextCycles(t *testing.T) {
	th := ThresholdUnset
	seen := []Threshold{}
	for i := 0; i < 4; i++ {
		th = th.Next()
		seen = append(seen, th)
	}

	want := []Threshold{ThresholdLenient, ThresholdAverage, ThresholdStrict, ThresholdLenient}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("step %d: got %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestVerdictAndCountFake(t *testing.T) {
	reviews := []Review{
		{Text: "a", Label: true},
		{Text: "b", Label: false},
		{Text: "c", Label: false},
	}

	if reviews[0].Verdict() != "Real" || reviews[1].Verdict() != "Fake" {
		t.Errorf("unexpected verdicts: %s, %s", reviews[0].Verdict(), reviews[1].Verdict())
	}
	if got := CountFake(reviews); got != 2 {
		t.Errorf("CountFake = %d, want 2", got)
	}
}
