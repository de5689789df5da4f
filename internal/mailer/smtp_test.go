package mailer

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"
)

func TestSend_UsesConfiguredServer(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "smtp.example.com", Port: 587, User: "u", Password: "p", From: "salon@example.com"})

	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		if a == nil {
			t.Fatalf("expected auth when a user is configured")
		}
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}

	if err := m.Send(context.Background(), "hoa@example.com", "Booking received", "Hi\nthere"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("unexpected addr %q", gotAddr)
	}
	if len(gotTo) != 1 || gotTo[0] != "hoa@example.com" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}
	if !strings.Contains(string(gotMsg), "Subject: Booking received\r\n") || !strings.HasSuffix(string(gotMsg), "Hi\r\nthere") {
		t.Fatalf("unexpected message:\n%s", gotMsg)
	}
}

func TestSend_CancelledContext(t *testing.T) {
	m := NewSMTPMailer(Config{Host: "localhost", Port: 25})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatalf("must not dial with a cancelled context")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, "a@b.c", "s", "b"); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestCompose_Headers(t *testing.T) {
	at := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	msg := string(Compose("a@x.vn", "b@y.vn", "Hi", "body", at))

	for _, h := range []string{"From: a@x.vn", "To: b@y.vn", "Content-Type: text/plain; charset=UTF-8"} {
		if !strings.Contains(msg, h) {
			t.Fatalf("missing header %q in\n%s", h, msg)
		}
	}
}
