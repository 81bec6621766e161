package expenditure

import (
	"context"
	"errors"
	"testing"
)

func TestSaveRejectsBadKeys(t *testing.T) {
	s := NewStore(nil)

	cases := []Expenditure{
		{ID: ID{Date: "", ExpenseType: "Thread"}},
		{ID: ID{Date: "2025-03-01", ExpenseType: "  "}},
		{ID: ID{Date: "01/03/2025", ExpenseType: "Thread"}},
	}
	for _, c := range cases {
		if _, err := s.Save(context.Background(), c); !errors.Is(err, ErrIncompleteKey) {
			t.Fatalf("expected ErrIncompleteKey for %+v, got %v", c.ID, err)
		}
	}

	negative := Expenditure{ID: ID{Date: "2025-03-01", ExpenseType: "Thread"}, Amount: -5}
	if _, err := s.Save(context.Background(), negative); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestDeleteRejectsBadKeys(t *testing.T) {
	s := NewStore(nil)

	cases := []ID{
		{Date: "", ExpenseType: "Thread"},
		{Date: "2025-03-01", ExpenseType: ""},
		{Date: "not-a-date", ExpenseType: "Thread"},
		{Date: "13-2025-40", ExpenseType: "Thread"},
	}
	for _, id := range cases {
		if err := s.Delete(context.Background(), id); !errors.Is(err, ErrIncompleteKey) {
			t.Fatalf("expected ErrIncompleteKey for %+v, got %v", id, err)
		}
	}
}
