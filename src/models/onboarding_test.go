package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnboardingRequest(t *testing.T) {
	t.Run("customer id is required", func(t *testing.T) {
		req := OnboardingRequest{}
		assert.NotNil(t, req.Validate())

		req.CustomerID = "C-100"
		assert.Nil(t, req.Validate())
	})

	t.Run("defaults fill absent fields only", func(t *testing.T) {
		req := OnboardingRequest{CustomerID: "C-100"}
		req.ApplyDefaults("SAVINGS")

		assert.Equal(t, "0.00", req.InitialDeposit)
		assert.Equal(t, "SAVINGS", req.AccountType)

		req = OnboardingRequest{CustomerID: "C-100", InitialDeposit: "25.00", AccountType: "CHECKING"}
		req.ApplyDefaults("SAVINGS")

		assert.Equal(t, "25.00", req.InitialDeposit)
		assert.Equal(t, "CHECKING", req.AccountType)
	})
}

func TestNewOnboardingResponse(t *testing.T) {
	t.Run("formats processing time in milliseconds", func(t *testing.T) {
		result := NewWorkflowResult("C-100")
		result.Status = WorkflowStatusSuccess
		result.ProcessingTime = 1500 * time.Millisecond

		response := NewOnboardingResponse(result)
		assert.Equal(t, "1500ms", response.ProcessingTime)
	})

	t.Run("nil errors serialize as an empty list", func(t *testing.T) {
		result := NewWorkflowResult("C-100")
		result.Status = WorkflowStatusSuccess

		response := NewOnboardingResponse(result)
		assert.NotNil(t, response.Errors)
		assert.Empty(t, response.Errors)
	})
}
