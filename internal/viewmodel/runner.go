package viewmodel

import (
	"context"
	"fmt"
	"time"

	"github.com/yildizm/ReviewRadar/internal/logger"
	"github.com/yildizm/ReviewRadar/internal/service"
)

// Runner performs effects against the analysis service
type Runner struct {
	analyzer service.Analyzer
	log      *logger.Logger
}

// NewRunner creates a runner; log may be nil
func NewRunner(analyzer service.Analyzer, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Discard()
	}
	return &Runner{
		analyzer: analyzer,
		log:      log.WithComponent("runner"),
	}
}

// Execute performs one effect and returns its completion event
func (r *Runner) Execute(ctx context.Context, eff Effect) Event {
	start := time.Now()

	switch eff := eff.(type) {
	case AnalyzeURL:
		r.log.DebugWithFields("analyzing %s", []logger.Field{logger.Mode(ModeAutomatic.String()), logger.F("threshold", eff.Threshold)}, eff.URL)
		reviews, err := r.analyzer.AnalyzeReviews(ctx, eff.URL, eff.Threshold.Value())
		if err != nil {
			r.log.Debug("automatic analysis failed: %v", err)
			return AutomaticFailed{Gen: eff.Gen, Err: err}
		}
		r.log.InfoWithFields("automatic analysis done", []logger.Field{logger.Count(len(reviews)), logger.Duration(time.Since(start))})
		return AutomaticSucceeded{Gen: eff.Gen, Reviews: reviews}

	case AnalyzeText:
		r.log.DebugWithFields("analyzing review", []logger.Field{logger.Mode(ModeManual.String()), logger.F("rating", eff.Rating), logger.F("threshold", eff.Threshold)})
		rv, err := r.analyzer.AnalyzeSingleReview(ctx, eff.Text, eff.Threshold.Value(), eff.Rating)
		if err != nil {
			r.log.Debug("manual analysis failed: %v", err)
			return ManualFailed{Err: err}
		}
		r.log.InfoWithFields("manual analysis done", []logger.Field{logger.F("verdict", rv.Verdict()), logger.Duration(time.Since(start))})
		return ManualSucceeded{Review: rv}

	default:
		panic(fmt.Sprintf("viewmodel: unknown effect %T", eff))
	}
}
