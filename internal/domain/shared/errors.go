package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ConfigError indicates a malformed planner configuration or an unknown
// planning mode. Raised before a job is created, never inside one.
type ConfigError struct {
	*DomainError
}

func NewConfigError(message string) *ConfigError {
	return &ConfigError{DomainError: &DomainError{Message: message}}
}

// ValidationError indicates invalid input data (order quantity, priority, status)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indicates an unknown entity id on fetch, cancel, or commit
type NotFoundError struct {
	*DomainError
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s %s not found", entity, id)},
		Entity:      entity,
		ID:          id,
	}
}

// PreconditionError indicates a state-machine violation: cancelling a terminal
// job or committing an already-committed plan
type PreconditionError struct {
	*DomainError
}

func NewPreconditionError(message string) *PreconditionError {
	return &PreconditionError{DomainError: &DomainError{Message: message}}
}

// PlannerError wraps any failure raised inside a planning strategy. The job
// runner converts it into a failed job; it never reaches the API caller.
type PlannerError struct {
	*DomainError
	Cause error
}

func NewPlannerError(message string, cause error) *PlannerError {
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &PlannerError{
		DomainError: &DomainError{Message: message},
		Cause:       cause,
	}
}

func (e *PlannerError) Unwrap() error {
	return e.Cause
}
