package task

import "catalog/relations/internal/domain"

// FamilyTask asks a worker to resolve the variation family a seed listing belongs to.
type FamilyTask struct {
	Seed       domain.ASIN `json:"seed"`
	SeedIndex  int         `json:"seed_index"`            // Position in the seed list, used for progress tracking
	RetryCount int         `json:"retry_count,omitempty"` // Failed attempts so far
	Error      string      `json:"error,omitempty"`       // Error message from the last failure
}

func (t *FamilyTask) TaskType() string {
	return TypeFamily
}

func (t *FamilyTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
