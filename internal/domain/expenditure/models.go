package expenditure

import "time"

// ID is the composite identity: at most one expenditure exists per
// (date, category) pair.
type ID struct {
	Date        string `json:"date"`
	ExpenseType string `json:"expenseType"`
}

type Expenditure struct {
	ID        ID        `json:"id"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

const DateLayout = "2006-01-02"

func (id ID) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, id.Date)
}
