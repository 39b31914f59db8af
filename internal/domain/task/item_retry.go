package task

import "catalog/relations/internal/domain"

type ItemRetryTask struct {
	ASIN         domain.ASIN `json:"asin"`
	Parent       domain.ASIN `json:"parent"`
	RetryCount   int         `json:"retry_count"`   // Number of times this item has been retried
	Error        string      `json:"error"`         // Error message from the last failure
	FailureStage string      `json:"failure_stage"` // "fetch" or "save" - which stage failed
}

func (t *ItemRetryTask) TaskType() string {
	return TypeItemRetry
}

func (t *ItemRetryTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
