package shared

import (
	"testing"
	"time"
)

func TestParseDateFormats(t *testing.T) {
	if _, err := ParseDate("2025-03-10"); err != nil {
		t.Fatalf("expected YYYY-MM-DD to parse: %v", err)
	}
	if _, err := ParseDate("2025-03-10T12:00:00Z"); err != nil {
		t.Fatalf("expected RFC3339 to parse: %v", err)
	}
	if _, err := ParseDate("10/03/2025"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if parsed, err := ParseDate(""); err != nil || !parsed.IsZero() {
		t.Fatalf("empty value must parse to zero time, got %v (%v)", parsed, err)
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	if err != nil || got != nil {
		t.Fatalf("empty value must yield nil, got %v (%v)", got, err)
	}

	got, err = ParseOptionalDate("2025-03-10")
	if err != nil || got == nil {
		t.Fatalf("expected pointer for valid date, got %v (%v)", got, err)
	}
	if !got.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got)
	}

	if _, err := ParseOptionalDate("not-a-date"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestValidatorCollectsAndSorts(t *testing.T) {
	v := NewValidator()
	v.Required("name", "")
	v.NonNegative("amount", -5)
	v.Enum("salaryType", "HOURLY", "WEEKLY", "MONTHLY")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[0].Field != "amount" {
		t.Fatalf("expected issues sorted by field, got %+v", issues)
	}
	if v.Summary() == "" {
		t.Fatal("expected non-empty summary")
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()
	if _, ok := v.Date("date", "2025-03-10"); !ok || v.HasIssues() {
		t.Fatal("valid date must not record an issue")
	}

	v = NewValidator()
	if _, ok := v.Date("date", "bogus"); ok || !v.HasIssues() {
		t.Fatal("invalid date must record an issue")
	}
}
