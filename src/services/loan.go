package services

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/banking-services/src/telemetry"
	"github.com/jiaming2012/banking-services/src/utils"
)

type LoanEligibilityChecker interface {
	CheckEligibility(ctx context.Context, customerID string, accountID string) (bool, error)
}

type LoanEligibilityRequestDTO struct {
	CustomerID string `json:"customerId"`
	AccountID  string `json:"accountId"`
}

type LoanEligibilityResponseDTO struct {
	Eligible *bool `json:"eligible"`
}

type LoanAPIClient struct {
	baseURL string
	client  *http.Client
}

func NewLoanAPIClient(baseURL string) *LoanAPIClient {
	return &LoanAPIClient{
		baseURL: baseURL,
		client:  newServiceHTTPClient(),
	}
}

func (c *LoanAPIClient) CheckEligibility(ctx context.Context, customerID string, accountID string) (bool, error) {
	tracer := otel.Tracer("loan-api")
	ctx, span := tracer.Start(ctx, "LoanAPIClient.CheckEligibility")
	defer span.End()

	span.SetAttributes(telemetry.NewBusinessContext().CustomerID(customerID).AccountID(accountID).ToAttributes()...)

	req := LoanEligibilityRequestDTO{
		CustomerID: customerID,
		AccountID:  accountID,
	}

	var resp LoanEligibilityResponseDTO
	url := fmt.Sprintf("%s/api/loans/eligibility", c.baseURL)

	if _, err := utils.PostJSON(ctx, c.client, url, req, &resp); err != nil {
		return false, fmt.Errorf("LoanAPIClient.CheckEligibility: %w", err)
	}

	if resp.Eligible == nil {
		return false, fmt.Errorf("LoanAPIClient.CheckEligibility: loan service returned no usable eligibility value")
	}

	return *resp.Eligible, nil
}
