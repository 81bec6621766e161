package employee

import "time"

const (
	SalaryTypeWeekly  = "WEEKLY"
	SalaryTypeMonthly = "MONTHLY"
)

type Employee struct {
	ID               string    `json:"id"`
	BranchID         string    `json:"branchId"`
	Name             string    `json:"name"`
	SalaryType       string    `json:"salaryType"`
	RatePerMeter     float64   `json:"rate"`
	MonthlySalary    float64   `json:"salary"`
	BonusEligible    bool      `json:"isBonused"`
	FabricType       string    `json:"fabricType"`
	AdvanceTaken     float64   `json:"advanceTaken"`
	AdvanceRemaining float64   `json:"advanceRemaining"`
	CreatedAt        time.Time `json:"createdAt"`
}

type FabricType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FabricTypes is the master list the employee form binds to.
func FabricTypes() []FabricType {
	return []FabricType{
		{ID: "1", Name: "Cotton"},
		{ID: "2", Name: "Rayon"},
		{ID: "3", Name: "Denim"},
		{ID: "4", Name: "Poplin"},
		{ID: "5", Name: "Voile"},
	}
}
