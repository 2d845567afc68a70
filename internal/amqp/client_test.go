package amqp

import (
	"testing"
	"time"
)

func TestReportSyncMessageRoundTrip(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	msg := NewReportSyncMessage("alice@example.com", date)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}

	got, err := ReportSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("ReportSyncMessageFromJSON() error: %v", err)
	}

	if got.UserKey != "alice@example.com" {
		t.Errorf("UserKey = %q, want alice@example.com", got.UserKey)
	}
	if !got.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", got.Date, date)
	}
	if got.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestReportSyncMessageFromJSONInvalid(t *testing.T) {
	if _, err := ReportSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
