package task

import "catalog/relations/internal/domain"

// ItemTask asks a worker to collect attributes, images and offers for one family member.
type ItemTask struct {
	ASIN   domain.ASIN `json:"asin"`
	Parent domain.ASIN `json:"parent"`
}

func (t *ItemTask) TaskType() string {
	return TypeItem
}

func (t *ItemTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
