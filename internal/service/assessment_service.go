package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/assessment"
	"github.com/mmynk/healthcoach/internal/calculator"
	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/pkg/api"
)

var errAssessmentDisabled = errors.New("assessment provider not configured")

// Assessor evaluates a prompt. *assessment.Client implements it.
type Assessor interface {
	Evaluate(ctx context.Context, prompt assessment.Prompt) (*models.Assessment, error)
}

// AssessmentService implements the AssessmentService RPC interface.
type AssessmentService struct {
	store    RecordStore
	assessor Assessor
	logger   *slog.Logger
	now      func() time.Time
}

// NewAssessmentService creates an assessment service. A nil assessor
// makes every call fail with Unavailable.
func NewAssessmentService(store RecordStore, assessor Assessor, logger *slog.Logger) *AssessmentService {
	return &AssessmentService{store: store, assessor: assessor, logger: logger, now: time.Now}
}

// Assess asks the provider for an evaluation of the caller's latest
// record or whole history.
func (s *AssessmentService) Assess(ctx context.Context, req *connect.Request[api.AssessRequest]) (*connect.Response[api.AssessResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	kind := models.AssessmentKind(req.Msg.Kind)
	if kind == "" {
		kind = models.AssessLatest
	}
	if kind != models.AssessLatest && kind != models.AssessGeneral {
		return nil, invalidArgument(assessment.ErrUnknownKind)
	}
	if s.assessor == nil {
		return nil, connect.NewError(connect.CodeUnavailable, errAssessmentDisabled)
	}

	owner, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "Assess", err)
	}
	samples, err := s.store.ListSamples(ctx, userID, 0)
	if err != nil {
		return nil, storeError(s.logger, "Assess", err)
	}

	locale := calculator.ParseLocale(req.Msg.Locale)
	view := newRecordView(owner, dateOf(s.now()), req.Msg.Locale)
	entries := make([]assessment.Entry, 0, len(samples))
	for _, sample := range samples {
		entries = append(entries, assessment.Entry{Sample: sample, Derived: view.derive(sample)})
	}

	profile := assessment.Profile{Gender: owner.Gender, HeightCm: owner.HeightCm}
	if view.subject.BirthDate != nil {
		age := calculator.CalculateAge(*view.subject.BirthDate, view.today)
		profile.Age = &age
	}

	prompt, err := assessment.Build(kind, profile, entries, locale)
	if errors.Is(err, assessment.ErrNoData) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	if err != nil {
		return nil, invalidArgument(err)
	}

	started := time.Now()
	result, err := s.assessor.Evaluate(ctx, prompt)
	if err != nil {
		s.logger.Error("Assessment failed", "user_id", userID, "kind", kind, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, assessment.ErrUnavailable)
	}

	s.logger.Info("Assessment completed",
		"user_id", userID,
		"kind", kind,
		"records", len(entries),
		"duration", time.Since(started),
	)
	return connect.NewResponse(&api.AssessResponse{
		Kind:       string(kind),
		Assessment: toAPIAssessment(result),
	}), nil
}
