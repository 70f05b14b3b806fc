package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/pkg/api"
)

func TestComputeMetrics(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		req          *api.ComputeMetricsRequest
		wantBMI      float64
		wantBodyType string
		wantBodyAge  *int
	}{
		{
			name: "weight and height only",
			req: &api.ComputeMetricsRequest{
				Measurements: api.Measurements{Weight: 90},
				Profile:      api.Profile{HeightCm: ptr(180)},
			},
			wantBMI: 27.8,
		},
		{
			name: "full sample",
			req: &api.ComputeMetricsRequest{
				Measurements: api.Measurements{Weight: 95, BodyFat: ptr(35), Muscle: ptr(30)},
				Profile:      api.Profile{HeightCm: ptr(170), BirthDate: strPtr("1974-06-16")},
				Locale:       "es",
			},
			wantBMI:      32.9,
			wantBodyType: "obese",
			// 49 + 1.45 (BMI 32.9) + 2 (body fat 35%) = 52.45
			wantBodyAge: func() *int { v := 52; return &v }(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.metrics.ComputeMetrics(ctx, connect.NewRequest(tt.req))
			if err != nil {
				t.Fatalf("ComputeMetrics failed: %v", err)
			}
			m := resp.Msg.Metrics
			if m.BMI == nil || m.BMI.Value != tt.wantBMI {
				t.Errorf("BMI: expected %v, got %+v", tt.wantBMI, m.BMI)
			}
			if tt.wantBodyType == "" && m.BodyType != nil {
				t.Errorf("body type: expected none, got %+v", m.BodyType)
			}
			if tt.wantBodyType != "" && (m.BodyType == nil || m.BodyType.Type != tt.wantBodyType) {
				t.Errorf("body type: expected %s, got %+v", tt.wantBodyType, m.BodyType)
			}
			if (tt.wantBodyAge == nil) != (m.BodyAge == nil) ||
				(tt.wantBodyAge != nil && *tt.wantBodyAge != *m.BodyAge) {
				t.Errorf("body age: expected %v, got %v", tt.wantBodyAge, m.BodyAge)
			}
		})
	}
}

func TestComputeMetrics_NoHeight(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.metrics.ComputeMetrics(context.Background(), connect.NewRequest(&api.ComputeMetricsRequest{
		Measurements: api.Measurements{Weight: 70, BodyFat: ptr(20), Muscle: ptr(30)},
		Profile:      api.Profile{BirthDate: strPtr("2000-01-01")},
	}))
	if err != nil {
		t.Fatalf("ComputeMetrics failed: %v", err)
	}
	m := resp.Msg.Metrics
	if m.BMI != nil || m.BodyType != nil || m.BodyAge != nil {
		t.Errorf("expected only age without height, got %+v", m)
	}
	if m.Age == nil || *m.Age != 24 {
		t.Errorf("age: expected 24, got %v", m.Age)
	}
}

func TestComputeMetrics_Validation(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.metrics.ComputeMetrics(context.Background(), connect.NewRequest(&api.ComputeMetricsRequest{
		Measurements: api.Measurements{Weight: 0},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.metrics.ComputeMetrics(context.Background(), connect.NewRequest(&api.ComputeMetricsRequest{
		Measurements: api.Measurements{Weight: 70, Water: ptr(120)},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)
}
