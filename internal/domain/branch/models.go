package branch

import "time"

type Branch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
