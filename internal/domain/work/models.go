package work

import "time"

// Entry references the employee by display name rather than id. The
// source data was captured that way and renames are not back-filled.
type Entry struct {
	ID           string    `json:"id"`
	BranchID     string    `json:"branchId"`
	EmployeeName string    `json:"employeeName"`
	WorkType     string    `json:"employeeType"`
	Shift        string    `json:"shift"`
	FabricMeters float64   `json:"fabricMeters"`
	WorkDate     time.Time `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
}

type WorkType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Shift struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TimeRange string `json:"timeRange"`
}

func WorkTypes() []WorkType {
	return []WorkType{
		{ID: "1", Name: "Stitching"},
		{ID: "2", Name: "Cutting"},
		{ID: "3", Name: "Packing"},
		{ID: "4", Name: "Finishing"},
		{ID: "5", Name: "Checking"},
	}
}

func Shifts() []Shift {
	return []Shift{
		{ID: "1", Name: "Morning", TimeRange: "6:00 AM - 2:00 PM"},
		{ID: "2", Name: "Afternoon", TimeRange: "2:00 PM - 10:00 PM"},
		{ID: "3", Name: "Night", TimeRange: "10:00 PM - 6:00 AM"},
	}
}
