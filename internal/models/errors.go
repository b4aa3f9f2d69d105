package models

import (
	"errors"
	"fmt"
)

// Базовые ошибки доменного слоя
var (
	ErrValidation         = errors.New("validation error")
	ErrOracleFailure      = errors.New("oracle failure")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAssignmentRejected = errors.New("assignment rejected")
)

// AssignmentRejectedError содержит причину отказа в назначении респондера
type AssignmentRejectedError struct {
	Reason string
}

func (e *AssignmentRejectedError) Error() string {
	return fmt.Sprintf("assignment rejected: %s", e.Reason)
}

// Is позволяет сопоставлять ошибку с ErrAssignmentRejected через errors.Is
func (e *AssignmentRejectedError) Is(target error) bool {
	return target == ErrAssignmentRejected
}
