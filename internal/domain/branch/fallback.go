package branch

import "github.com/google/uuid"

// Fallback returns the fixed branch list served when the store is
// unreachable. IDs are derived from the branch code so repeated calls
// (and reseeded databases) agree on identity.
func Fallback() []Branch {
	seed := []struct {
		name, code, location string
	}{
		{"Main Branch", "MB-001", "Main"},
		{"North Branch", "NB-002", "North"},
		{"South Branch", "SB-003", "South"},
		{"West Branch", "WB-004", "West"},
		{"East Branch", "EB-005", "East"},
	}

	branches := make([]Branch, 0, len(seed))
	for _, s := range seed {
		branches = append(branches, Branch{
			ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte("branch:"+s.code)).String(),
			Name:     s.name,
			Code:     s.code,
			Location: s.location,
		})
	}
	return branches
}
