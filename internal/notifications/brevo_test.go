package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"souveno-backend/internal/contact"
	"souveno-backend/internal/schedule"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*BrevoClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewBrevoClient("key", "noreply@souvenohub.com", "Souveno Hub", "hello@souvenohub.com", false)
	if c == nil {
		t.Fatalf("expected client")
	}
	c.endpoint = srv.URL
	return c, srv
}

func TestNewBrevoClientRequiresCredentials(t *testing.T) {
	if c := NewBrevoClient("", "noreply@x.com", "", "admin@x.com", false); c != nil {
		t.Fatalf("expected nil client without api key")
	}
	if c := NewBrevoClient("key", "", "", "admin@x.com", false); c != nil {
		t.Fatalf("expected nil client without sender")
	}
}

func TestSendContactAdminNotification(t *testing.T) {
	var got brevoSendRequest
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"id-123"}`))
	})

	msg := contact.Message{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Subject:   "Technical Support",
		Body:      "My board will not boot.",
		CreatedAt: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	id, err := c.SendContactAdminNotification(context.Background(), msg)
	if err != nil {
		t.Fatalf("send error: %v", err)
	}
	if id != "id-123" {
		t.Fatalf("expected message id, got %q", id)
	}
	if len(got.To) != 1 || got.To[0].Email != "hello@souvenohub.com" {
		t.Fatalf("expected admin recipient, got %+v", got.To)
	}
	if !strings.Contains(got.Subject, "Technical Support") {
		t.Fatalf("expected subject in email subject line, got %q", got.Subject)
	}
	if !strings.Contains(got.HtmlContent, "Ada Lovelace") {
		t.Fatalf("expected name in body")
	}
}

func TestSendScheduleConfirmation(t *testing.T) {
	var got brevoSendRequest
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"messageId":"id-456"}`))
	})

	req := schedule.Request{
		Name:          "A",
		Email:         "a@x.com",
		Phone:         "5550123",
		ServiceType:   "Consult",
		PreferredDate: "2026-06-01",
		PreferredTime: "10:00",
		CreatedAt:     time.Now(),
	}

	if _, err := c.SendScheduleConfirmation(context.Background(), req); err != nil {
		t.Fatalf("send error: %v", err)
	}
	if len(got.To) != 1 || got.To[0].Email != "a@x.com" {
		t.Fatalf("expected submitter recipient, got %+v", got.To)
	}
	if !strings.Contains(got.HtmlContent, "2026-06-01") || !strings.Contains(got.HtmlContent, "10:00") {
		t.Fatalf("expected slot details in body")
	}
}

func TestSendHTMLStatusError(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad key"}`))
	})

	if _, err := c.sendHTML(context.Background(), "a@x.com", "A", "subject", "<p>hi</p>"); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}

func TestSendHTMLMissingRecipient(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request should not be sent")
	})

	if _, err := c.sendHTML(context.Background(), "", "A", "subject", "<p>hi</p>"); err == nil {
		t.Fatalf("expected error for missing recipient")
	}
}
