package secret

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"vaultis/internal/domain/secret"
)

type stubService struct {
	createID  string
	createErr error
	reveal    secret.RevealResult
	revealErr error

	gotContent  string
	gotMaxViews int
	gotExpiry   time.Duration
}

func (s *stubService) Create(_ context.Context, content string, maxViews int, expiresIn time.Duration) (string, error) {
	s.gotContent = content
	s.gotMaxViews = maxViews
	s.gotExpiry = expiresIn
	return s.createID, s.createErr
}

func (s *stubService) Reveal(_ context.Context, _ string) (secret.RevealResult, error) {
	return s.reveal, s.revealErr
}

func (s *stubService) Sweep(_ context.Context) (int64, error) {
	return 0, nil
}

func TestHandler_createDefaultsToSingleView(t *testing.T) {
	svc := &stubService{createID: "abc"}
	handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

	output, err := handler.create(context.Background(), &createInput{
		Body: createRequest{Content: "password", ExpiresInMinutes: 10},
	})

	require.NoError(t, err)
	assert.Equal(t, "abc", output.Body.ID)
	assert.Equal(t, 1, svc.gotMaxViews)
	assert.Equal(t, 10*time.Minute, svc.gotExpiry)
}

func TestHandler_revealStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "missing", err: secret.ErrNotFound, wantStatus: 404},
		{name: "expired", err: secret.ErrExpired, wantStatus: 410},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{revealErr: tt.err}
			handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

			_, err := handler.reveal(context.Background(), &revealInput{ID: "x"})

			require.Error(t, err)
			var status huma.StatusError
			require.ErrorAs(t, err, &status)
			assert.Equal(t, tt.wantStatus, status.GetStatus())
		})
	}
}

func TestHandler_revealReturnsContent(t *testing.T) {
	svc := &stubService{reveal: secret.RevealResult{Content: "hello", ViewsLeft: 2}}
	handler := NewHandler(svc, slog.Default(), huma.Middlewares{})

	output, err := handler.reveal(context.Background(), &revealInput{ID: "x"})

	require.NoError(t, err)
	assert.Equal(t, "hello", output.Body.Content)
	assert.Equal(t, 2, output.Body.ViewsLeft)
}
