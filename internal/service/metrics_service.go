package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/calculator"
	"github.com/mmynk/healthcoach/pkg/api"
)

// MetricsService previews derived metrics without touching storage.
type MetricsService struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewMetricsService creates a metrics preview service.
func NewMetricsService(logger *slog.Logger) *MetricsService {
	return &MetricsService{logger: logger, now: time.Now}
}

// ComputeMetrics derives what it can from an unsaved sample and profile.
func (s *MetricsService) ComputeMetrics(ctx context.Context, req *connect.Request[api.ComputeMetricsRequest]) (*connect.Response[api.ComputeMetricsResponse], error) {
	today := dateOf(s.now())
	if err := validateMeasurements(req.Msg.Measurements); err != nil {
		return nil, invalidArgument(err)
	}
	if err := validateProfile(req.Msg.Profile, today); err != nil {
		return nil, invalidArgument(err)
	}

	derived := calculator.Derive(
		measurementOf(req.Msg.Measurements),
		subjectOf(req.Msg.Profile),
		today,
		calculator.ParseLocale(req.Msg.Locale),
	)
	return connect.NewResponse(&api.ComputeMetricsResponse{Metrics: toAPIMetrics(derived)}), nil
}
