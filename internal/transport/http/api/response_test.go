package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestSuccessWritesBarePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, []string{"a", "b"})

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload []string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected a bare JSON array: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("payload lost: %v", payload)
	}
}

func TestFailWritesErrorObject(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, 422, "advance_exceeds_remaining", "cannot deduct more than remaining", "req-1")

	if rec.Code != 422 {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var e Error
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if e.Code != "advance_exceeds_remaining" || e.RequestID != "req-1" {
		t.Fatalf("unexpected error body: %+v", e)
	}
}
