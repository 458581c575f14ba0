package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/yildizm/ReviewRadar/internal/config"
	"github.com/yildizm/ReviewRadar/internal/formatter"
	"github.com/yildizm/ReviewRadar/internal/history"
	"github.com/yildizm/ReviewRadar/internal/logger"
	"github.com/yildizm/ReviewRadar/internal/review"
	"github.com/yildizm/ReviewRadar/internal/service"
	"github.com/yildizm/ReviewRadar/internal/viewmodel"
)

// historySourceLength bounds the review excerpt stored for manual entries
const historySourceLength = 80

// session wires one command's service client, view-model and history
type session struct {
	cfg     *config.Config
	log     *logger.Logger
	client  service.Analyzer
	runner  *viewmodel.Runner
	store   *viewmodel.Store
	history *history.Store
}

// newSession builds a session from the loaded configuration. analyzer may
// be nil, in which case an HTTP client for the configured endpoint is used.
func newSession(cfg *config.Config, analyzer service.Analyzer) (*session, error) {
	log := logger.NewWithCallback("cli", isVerbose)

	if analyzer == nil {
		client, err := service.New(cfg.ServiceClientConfig(), service.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("failed to create service client: %w", err)
		}
		log.Debug("using analysis service at %s", client.Endpoint())
		analyzer = client
	}

	runner := viewmodel.NewRunner(analyzer, log)
	s := &session{
		cfg:    cfg,
		log:    log,
		client: analyzer,
		runner: runner,
		store:  viewmodel.NewStore(viewmodel.NewState(cfg.Threshold()), runner),
	}

	if cfg.History.Enabled {
		h, err := history.Open(cfg.HistoryPath())
		if err != nil {
			// history is best effort; analysis still works without it
			log.Warn("history disabled: %v", err)
		} else {
			s.history = h
		}
	}

	return s, nil
}

// Close releases the history database
func (s *session) Close() {
	if s.history == nil {
		return
	}
	if err := s.history.Close(); err != nil {
		s.log.Warn("failed to close history: %v", err)
	}
}

// record stores a successful submission in the history database
func (s *session) record(ctx context.Context, eff viewmodel.Effect, ev viewmodel.Event) {
	if s.history == nil {
		return
	}

	var entry history.Entry
	switch eff := eff.(type) {
	case viewmodel.AnalyzeURL:
		done, ok := ev.(viewmodel.AutomaticSucceeded)
		if !ok {
			return
		}
		entry = history.NewEntry(viewmodel.ModeAutomatic.String(), eff.URL, eff.Threshold, done.Reviews)
	case viewmodel.AnalyzeText:
		done, ok := ev.(viewmodel.ManualSucceeded)
		if !ok {
			return
		}
		entry = history.NewEntry(viewmodel.ModeManual.String(), excerpt(eff.Text, historySourceLength), eff.Threshold, []review.Review{done.Review})
		entry.Site = ""
	default:
		return
	}

	if _, err := s.history.Record(ctx, entry); err != nil {
		s.log.Warn("failed to record history: %v", err)
	}
}

// submit runs one submission through the store and records it
func (s *session) submit(ctx context.Context, ev viewmodel.Event) (viewmodel.State, error) {
	before := s.store.Snapshot()
	st, err := s.store.Run(ctx, ev)
	if err != nil {
		return st, err
	}

	switch ev.(type) {
	case viewmodel.SubmitAutomatic:
		s.record(ctx,
			viewmodel.AnalyzeURL{URL: strings.TrimSpace(before.URL), Threshold: before.AutoThreshold},
			viewmodel.AutomaticSucceeded{Reviews: st.AutoResults})
	case viewmodel.SubmitManual:
		if n := len(st.ManualResults); n > 0 {
			s.record(ctx,
				viewmodel.AnalyzeText{Text: strings.TrimSpace(before.ManualText), Threshold: before.EffectiveManualThreshold()},
				viewmodel.ManualSucceeded{Review: st.ManualResults[n-1]})
		}
	}
	return st, nil
}

// report builds the formatter input for a result list
func (s *session) report(source string, mode viewmodel.Mode, threshold review.Threshold, reviews []review.Review) (*formatter.Report, error) {
	return formatter.NewReport(source, mode.String(), threshold, reviews, s.cfg.Analysis.HistogramBuckets, s.cfg.Overflow())
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
