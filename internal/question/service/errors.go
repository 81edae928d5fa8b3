package service

import "fmt"

const (
	CodeInvalidQuestion = "QUES-001"
	CodeNotOwner        = "ATHR-003"
)

// InvalidQuestionError is returned when a question id resolves to no
// question.
type InvalidQuestionError struct {
	Code    string
	Message string
}

func (e *InvalidQuestionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// OwnershipError is returned when a caller who is neither the question owner
// nor an admin attempts to delete a question.
type OwnershipError struct {
	Code    string
	Message string
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
