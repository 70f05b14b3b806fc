package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/healthcoach/pkg/api"
)

func TestProfile_GetAndUpdate(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	user, token := env.newUser(t, "lara@example.com")

	got, err := env.profile.GetProfile(ctx, authed(&api.GetProfileRequest{}, token))
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.Msg.User.ID != user.ID || got.Msg.User.HeightCm != nil || got.Msg.User.BirthDate != nil {
		t.Errorf("fresh profile: got %+v", got.Msg.User)
	}

	updated, err := env.profile.UpdateProfile(ctx, authed(&api.UpdateProfileRequest{
		DisplayName: "  Lara Souza ",
		HeightCm:    ptr(162.5),
		BirthDate:   strPtr("1992-02-29"),
		Gender:      "female",
	}, token))
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	u := updated.Msg.User
	if u.DisplayName != "Lara Souza" || u.HeightCm == nil || *u.HeightCm != 162.5 || u.Gender != "female" {
		t.Errorf("updated profile: got %+v", u)
	}

	// Omitted fields clear stored values.
	cleared, err := env.profile.UpdateProfile(ctx, authed(&api.UpdateProfileRequest{DisplayName: "Lara"}, token))
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if cleared.Msg.User.HeightCm != nil || cleared.Msg.User.BirthDate != nil || cleared.Msg.User.Gender != "" {
		t.Errorf("expected cleared profile, got %+v", cleared.Msg.User)
	}
}

func TestProfile_Validation(t *testing.T) {
	env := setupTestServer(t)
	_, token := env.newUser(t, "mara@example.com")

	tests := []struct {
		name string
		req  *api.UpdateProfileRequest
	}{
		{"blank name", &api.UpdateProfileRequest{DisplayName: "   "}},
		{"zero height", &api.UpdateProfileRequest{DisplayName: "Mara", HeightCm: ptr(0)}},
		{"absurd height", &api.UpdateProfileRequest{DisplayName: "Mara", HeightCm: ptr(450)}},
		{"malformed birth date", &api.UpdateProfileRequest{DisplayName: "Mara", BirthDate: strPtr("29/02/1992")}},
		{"future birth date", &api.UpdateProfileRequest{DisplayName: "Mara", BirthDate: strPtr("2030-01-01")}},
		{"unknown gender", &api.UpdateProfileRequest{DisplayName: "Mara", Gender: "robot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.profile.UpdateProfile(context.Background(), authed(tt.req, token))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestProfile_RequiresAuth(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.profile.GetProfile(context.Background(), connect.NewRequest(&api.GetProfileRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}
