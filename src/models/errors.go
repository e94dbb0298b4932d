package models

import "errors"

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvalidRequestType = errors.New("invalid request type")
	ErrRecordNotFound     = errors.New("record not found")
)

// Error taxonomy attached to spans via the business context.
const (
	ErrorTypeValidation = "VALIDATION_ERROR"
	ErrorTypeService    = "SERVICE_ERROR"
	ErrorTypeDatabase   = "DATABASE_ERROR"
	ErrorTypeWorkflow   = "WORKFLOW_ERROR"
)

type ErrorDTO struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}
