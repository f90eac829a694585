package merge

import (
	"context"
	"strings"

	coremerge "workbook-merger/core/merge"
	"workbook-merger/feature/history"

	"go.uber.org/zap"
)

// Service runs merges and records them to the history feature.
type Service struct {
	engine   *coremerge.Engine
	defaults coremerge.Options
	history  *history.Service
	logger   *zap.Logger
}

// NewService creates a merge service. The history service is optional.
func NewService(logger *zap.Logger, defaults coremerge.Options, hist *history.Service) *Service {
	return &Service{
		engine:   coremerge.NewEngine(logger),
		defaults: defaults,
		history:  hist,
		logger:   logger,
	}
}

// Defaults returns the server-side default options.
func (s *Service) Defaults() coremerge.Options {
	return s.defaults
}

// Merge runs the engine and records the run. It returns the result and
// the history job id (empty when history is unavailable). Recording
// failures are logged, never surfaced: the user still gets their file.
func (s *Service) Merge(ctx context.Context, sources []coremerge.Source, opts coremerge.Options) (*coremerge.Result, string, error) {
	result, err := s.engine.Merge(ctx, sources, opts)
	if err != nil {
		return nil, "", err
	}

	jobID := ""
	if s.history != nil && s.history.Enabled() {
		names := make([]string, len(sources))
		for i, src := range sources {
			names[i] = src.Name
		}
		job := &history.MergeJob{
			Sources:    strings.Join(names, ","),
			Policy:     string(opts.Policy),
			RowsIn:     result.Report.Summary.RowsIn,
			RowsOut:    result.Report.Summary.RowsOut,
			Conflicts:  result.Report.Summary.Conflicts,
			Duplicates: result.Report.Summary.Duplicates,
		}
		if err := s.history.Record(ctx, job, result.Output); err != nil {
			s.logger.Warn("failed to record merge job", zap.Error(err))
		} else {
			jobID = job.ID
		}
	}
	return result, jobID, nil
}
