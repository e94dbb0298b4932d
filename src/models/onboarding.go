package models

import (
	"fmt"
	"time"
)

type WorkflowStatus string

const (
	WorkflowStatusInProgress     WorkflowStatus = "IN_PROGRESS"
	WorkflowStatusSuccess        WorkflowStatus = "SUCCESS"
	WorkflowStatusPartialSuccess WorkflowStatus = "PARTIAL_SUCCESS"
	WorkflowStatusFailed         WorkflowStatus = "FAILED"
)

type OnboardingRequest struct {
	CustomerID           string `json:"customerId"`
	InitialDeposit       string `json:"initialDeposit"`
	AccountType          string `json:"accountType"`
	RequestCreditCard    bool   `json:"requestCreditCard"`
	CheckLoanEligibility bool   `json:"checkLoanEligibility"`
}

func (r *OnboardingRequest) Validate() error {
	if r.CustomerID == "" {
		return fmt.Errorf("OnboardingRequest.Validate: customerId is required")
	}

	return nil
}

// ApplyDefaults fills the optional request fields the same way regardless of
// transport: an absent deposit means zero, an absent account type means a
// savings account.
func (r *OnboardingRequest) ApplyDefaults(defaultAccountType string) {
	if r.InitialDeposit == "" {
		r.InitialDeposit = "0.00"
	}

	if r.AccountType == "" {
		r.AccountType = defaultAccountType
	}
}

// WorkflowResult aggregates the outcome of one onboarding invocation. It is
// created empty at workflow start, mutated by each stage, and never mutated
// after being returned to the caller.
type WorkflowResult struct {
	CustomerID     string
	AccountID      string
	CardID         string
	LoanEligible   bool
	Status         WorkflowStatus
	Errors         []string
	ProcessingTime time.Duration
}

func NewWorkflowResult(customerID string) *WorkflowResult {
	return &WorkflowResult{
		CustomerID: customerID,
		Status:     WorkflowStatusInProgress,
	}
}

func (r *WorkflowResult) AppendError(msg string) {
	r.Errors = append(r.Errors, msg)
}

type OnboardingResponse struct {
	CustomerID     string         `json:"customerId"`
	AccountID      string         `json:"accountId,omitempty"`
	CardID         string         `json:"cardId,omitempty"`
	LoanEligible   bool           `json:"loanEligible"`
	Status         WorkflowStatus `json:"status"`
	Errors         []string       `json:"errors"`
	ProcessingTime string         `json:"processingTime"`
}

func NewOnboardingResponse(result *WorkflowResult) *OnboardingResponse {
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}

	return &OnboardingResponse{
		CustomerID:     result.CustomerID,
		AccountID:      result.AccountID,
		CardID:         result.CardID,
		LoanEligible:   result.LoanEligible,
		Status:         result.Status,
		Errors:         errs,
		ProcessingTime: fmt.Sprintf("%dms", result.ProcessingTime.Milliseconds()),
	}
}
