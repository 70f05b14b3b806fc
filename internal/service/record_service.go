package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/calculator"
	"github.com/mmynk/healthcoach/internal/events"
	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/internal/storage"
	"github.com/mmynk/healthcoach/pkg/api"
)

// RecordStore is the persistence RecordService needs.
type RecordStore interface {
	storage.SampleStore
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RecordService implements the RecordService RPC interface.
type RecordService struct {
	store     RecordStore
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewRecordService creates a record service.
func NewRecordService(store RecordStore, publisher events.Publisher, logger *slog.Logger) *RecordService {
	return &RecordService{store: store, publisher: publisher, logger: logger, now: time.Now}
}

// SaveRecord creates a record, or updates the caller's record when an ID
// is given. A user has at most one record per day.
func (s *RecordService) SaveRecord(ctx context.Context, req *connect.Request[api.SaveRecordRequest]) (*connect.Response[api.SaveRecordResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	today := dateOf(s.now())
	if err := validateDate(req.Msg.RecordDate, today); err != nil {
		return nil, invalidArgument(err)
	}

	sample := &models.Sample{
		ID:         req.Msg.ID,
		UserID:     userID,
		RecordDate: req.Msg.RecordDate,
	}
	if err := applyMeasurements(sample, req.Msg.Measurements); err != nil {
		return nil, invalidArgument(err)
	}

	eventType := events.RecordCreated
	if sample.ID == "" {
		err = s.store.CreateSample(ctx, sample)
	} else {
		eventType = events.RecordUpdated
		err = s.store.UpdateSample(ctx, sample)
	}
	if errors.Is(err, storage.ErrConflict) {
		return nil, connect.NewError(connect.CodeAlreadyExists, errDuplicateDate)
	}
	if err != nil {
		return nil, storeError(s.logger, "SaveRecord", err)
	}

	s.publish(ctx, eventType, sample)

	owner, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "SaveRecord", err)
	}

	s.logger.Info("Record saved", "user_id", userID, "record_id", sample.ID, "event", eventType)
	view := newRecordView(owner, today, req.Msg.Locale)
	return connect.NewResponse(&api.SaveRecordResponse{Record: view.record(sample)}), nil
}

// ListRecords returns the caller's records, newest first, with derived
// metrics.
func (s *RecordService) ListRecords(ctx context.Context, req *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Year < 0 {
		return nil, invalidArgument(errors.New("year cannot be negative"))
	}

	owner, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "ListRecords", err)
	}
	samples, err := s.store.ListSamples(ctx, userID, req.Msg.Year)
	if err != nil {
		return nil, storeError(s.logger, "ListRecords", err)
	}
	years, err := s.store.ListSampleYears(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "ListRecords", err)
	}

	view := newRecordView(owner, dateOf(s.now()), req.Msg.Locale)
	return connect.NewResponse(&api.ListRecordsResponse{
		Records: view.records(samples),
		Years:   nonNilInts(years),
	}), nil
}

// GetRecord returns one of the caller's records.
func (s *RecordService) GetRecord(ctx context.Context, req *connect.Request[api.GetRecordRequest]) (*connect.Response[api.GetRecordResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument(errMissingID)
	}

	sample, err := s.store.GetSample(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, storeError(s.logger, "GetRecord", err)
	}
	owner, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "GetRecord", err)
	}

	view := newRecordView(owner, dateOf(s.now()), req.Msg.Locale)
	return connect.NewResponse(&api.GetRecordResponse{Record: view.record(sample)}), nil
}

// DeleteRecord removes one of the caller's records.
func (s *RecordService) DeleteRecord(ctx context.Context, req *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument(errMissingID)
	}

	recordDate, err := s.store.DeleteSample(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, storeError(s.logger, "DeleteRecord", err)
	}

	s.publish(ctx, events.RecordDeleted, &models.Sample{ID: req.Msg.ID, UserID: userID, RecordDate: recordDate})

	s.logger.Info("Record deleted", "user_id", userID, "record_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteRecordResponse{}), nil
}

// GetDashboard summarizes the caller's latest record and trends.
func (s *RecordService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	owner, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "GetDashboard", err)
	}
	samples, err := s.store.ListSamples(ctx, userID, 0)
	if err != nil {
		return nil, storeError(s.logger, "GetDashboard", err)
	}
	years, err := s.store.ListSampleYears(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "GetDashboard", err)
	}

	today := dateOf(s.now())
	view := newRecordView(owner, today, req.Msg.Locale)
	resp := summarize(view, samples, today)
	resp.Years = nonNilInts(years)

	return connect.NewResponse(resp), nil
}

// summarize builds the dashboard from samples ordered newest first.
func summarize(view recordView, samples []*models.Sample, today time.Time) *api.GetDashboardResponse {
	resp := &api.GetDashboardResponse{
		ChangesFromPrevious: []*api.Delta{},
		ChangesFromFirst:    []*api.Delta{},
		RecordCount:         len(samples),
	}
	if len(samples) == 0 {
		return resp
	}

	latest := samples[0]
	resp.Latest = view.record(latest)

	if last, err := models.ParseDate(latest.RecordDate); err == nil {
		resp.DaysSinceLastRecord = int(today.Sub(last).Hours() / 24)
		resp.Inactive = resp.DaysSinceLastRecord > models.InactivityDays
	}

	if len(samples) < 2 {
		return resp
	}

	previous := samples[1]
	first := samples[len(samples)-1]
	resp.Previous = view.record(previous)
	resp.ChangesFromPrevious = toAPIDeltas(calculator.CompareSamples(sampleMeasurement(latest), sampleMeasurement(previous)))
	resp.ChangesFromFirst = toAPIDeltas(calculator.CompareSamples(sampleMeasurement(latest), sampleMeasurement(first)))
	return resp
}

func (s *RecordService) publish(ctx context.Context, t events.Type, sample *models.Sample) {
	s.publisher.Publish(ctx, events.Event{
		Type:       t,
		UserID:     sample.UserID,
		RecordID:   sample.ID,
		RecordDate: sample.RecordDate,
		OccurredAt: s.now().UTC(),
	})
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
