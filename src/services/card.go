package services

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/banking-services/src/telemetry"
	"github.com/jiaming2012/banking-services/src/utils"
)

type CardIssuer interface {
	Issue(ctx context.Context, customerID string, accountID string) (string, error)
}

type IssueCardRequestDTO struct {
	CustomerID string `json:"customerId"`
	AccountID  string `json:"accountId"`
}

type IssueCardResponseDTO struct {
	CardID string `json:"cardId"`
}

type CardAPIClient struct {
	baseURL string
	client  *http.Client
}

func NewCardAPIClient(baseURL string) *CardAPIClient {
	return &CardAPIClient{
		baseURL: baseURL,
		client:  newServiceHTTPClient(),
	}
}

func (c *CardAPIClient) Issue(ctx context.Context, customerID string, accountID string) (string, error) {
	tracer := otel.Tracer("card-api")
	ctx, span := tracer.Start(ctx, "CardAPIClient.Issue")
	defer span.End()

	span.SetAttributes(telemetry.NewBusinessContext().CustomerID(customerID).AccountID(accountID).ToAttributes()...)

	req := IssueCardRequestDTO{
		CustomerID: customerID,
		AccountID:  accountID,
	}

	var resp IssueCardResponseDTO
	url := fmt.Sprintf("%s/api/cards", c.baseURL)

	if _, err := utils.PostJSON(ctx, c.client, url, req, &resp); err != nil {
		return "", fmt.Errorf("CardAPIClient.Issue: %w", err)
	}

	if resp.CardID == "" {
		return "", fmt.Errorf("CardAPIClient.Issue: card service returned an empty card id")
	}

	return resp.CardID, nil
}
