package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/internal/assessment"
	"github.com/mmynk/healthcoach/internal/models"
	"github.com/mmynk/healthcoach/pkg/api"
)

func TestAssess(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	_, token := env.newUser(t, "nina@example.com")
	setProfile(t, env, token, 165, "1980-03-10")

	env.assessor.result = &models.Assessment{
		Positives:   []string{"Hydration is within range."},
		Suggestions: []string{"Add two strength sessions per week."},
	}

	_, err := env.assessment.Assess(ctx, authed(&api.AssessRequest{Kind: "latest"}, token))
	assertCode(t, err, connect.CodeFailedPrecondition)

	saveRecord(t, env, token, &api.SaveRecordRequest{
		RecordDate:   "2024-02-01",
		Measurements: api.Measurements{Weight: 68, BodyFat: ptr(31), Muscle: ptr(24)},
	})
	saveRecord(t, env, token, &api.SaveRecordRequest{
		RecordDate:   "2024-06-01",
		Measurements: api.Measurements{Weight: 66.2, BodyFat: ptr(29.5), Muscle: ptr(24.8)},
	})

	resp, err := env.assessment.Assess(ctx, authed(&api.AssessRequest{Kind: "latest", Locale: "en"}, token))
	if err != nil {
		t.Fatalf("Assess(latest) failed: %v", err)
	}
	a := resp.Msg.Assessment
	if resp.Msg.Kind != "latest" || len(a.Positives) != 1 || len(a.Suggestions) != 1 {
		t.Errorf("unexpected assessment: %+v", resp.Msg)
	}
	if a.Negatives == nil || a.Cautions == nil {
		t.Error("empty categories must be empty lists, not null")
	}
	prompt := env.assessor.prompt.User
	if !strings.Contains(prompt, "66.2") || strings.Contains(prompt, "2024-02-01") {
		t.Errorf("latest prompt should describe only the latest record:\n%s", prompt)
	}

	if _, err := env.assessment.Assess(ctx, authed(&api.AssessRequest{Kind: "general"}, token)); err != nil {
		t.Fatalf("Assess(general) failed: %v", err)
	}
	prompt = env.assessor.prompt.User
	if !strings.Contains(prompt, "2024-02-01") || !strings.Contains(prompt, "2024-06-01") {
		t.Errorf("general prompt should cover the whole history:\n%s", prompt)
	}

	_, err = env.assessment.Assess(ctx, authed(&api.AssessRequest{Kind: "weekly"}, token))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestAssess_ProviderFailure(t *testing.T) {
	env := setupTestServer(t)
	_, token := env.newUser(t, "olga@example.com")
	saveRecord(t, env, token, &api.SaveRecordRequest{RecordDate: "2024-06-01", Measurements: api.Measurements{Weight: 70}})

	env.assessor.err = errors.New("upstream 502")
	_, err := env.assessment.Assess(context.Background(), authed(&api.AssessRequest{Kind: "latest"}, token))
	assertCode(t, err, connect.CodeUnavailable)
	if strings.Contains(err.Error(), "502") {
		t.Errorf("provider details leaked to client: %v", err)
	}
}

func TestAssess_NotConfigured(t *testing.T) {
	svc := NewAssessmentService(nil, nil, discardLogger())

	ctx := contextWithUser("user-1")
	_, err := svc.Assess(ctx, connect.NewRequest(&api.AssessRequest{Kind: "latest"}))
	assertCode(t, err, connect.CodeUnavailable)
	if !strings.Contains(err.Error(), errAssessmentDisabled.Error()) {
		t.Errorf("expected disabled message, got %v", err)
	}
}

var _ Assessor = (*assessment.Client)(nil)
