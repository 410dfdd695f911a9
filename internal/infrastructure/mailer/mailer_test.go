package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSMTPMailerSend(t *testing.T) {
	d := &fakeDialer{}
	m := &SMTPMailer{from: "no-reply@example.com", dialer: d}

	if err := m.Send(context.Background(), "alice@example.com", "Verify your account", "code 123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(d.sent))
	}

	msg := d.sent[0]
	if got := msg.GetHeader("To"); len(got) != 1 || got[0] != "alice@example.com" {
		t.Fatalf("unexpected To header %v", got)
	}
	if got := msg.GetHeader("From"); len(got) != 1 || got[0] != "no-reply@example.com" {
		t.Fatalf("unexpected From header %v", got)
	}

	var body bytes.Buffer
	if _, err := msg.WriteTo(&body); err != nil {
		t.Fatalf("failed to render message: %v", err)
	}
	if !strings.Contains(body.String(), "code 123456") {
		t.Fatalf("expected body in rendered message, got %q", body.String())
	}
}

func TestSMTPMailerSendError(t *testing.T) {
	dialErr := errors.New("connection refused")
	m := &SMTPMailer{from: "no-reply@example.com", dialer: &fakeDialer{err: dialErr}}

	err := m.Send(context.Background(), "alice@example.com", "s", "b")
	if !errors.Is(err, dialErr) {
		t.Fatalf("expected dial error, got %v", err)
	}
}

func TestSMTPMailerHonoursCanceledContext(t *testing.T) {
	d := &fakeDialer{}
	m := &SMTPMailer{dialer: d}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Send(ctx, "a@example.com", "s", "b"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(d.sent) != 0 {
		t.Fatalf("expected nothing sent")
	}
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	if err := m.Send(context.Background(), "bob@example.com", "Verify your account", "code 654321"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "bob@example.com") || !strings.Contains(buf.String(), "654321") {
		t.Fatalf("expected message to be logged, got %q", buf.String())
	}
}
