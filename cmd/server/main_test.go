package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/config"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/mailer"
)

func TestNewMailer(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	m := newMailer(&config.Config{}, log)
	assert.IsType(t, &mailer.LogMailer{}, m)
	assert.Contains(t, buf.String(), "SMTP_HOST not set")

	m = newMailer(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, MailFrom: "no-reply@example.com"}, log)
	assert.IsType(t, &mailer.SMTPMailer{}, m)
}

func TestOriginChecker(t *testing.T) {
	assert.Nil(t, originChecker(nil))

	check := originChecker([]string{"https://app.example.com/", " HTTP://localhost:3000"})
	require.NotNil(t, check)

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://app.example.com", true},
		{"http://localhost:3000", true},
		{"https://evil.example.com", false},
		{"http://app.example.com", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/stream", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, check(req))
		})
	}
}
