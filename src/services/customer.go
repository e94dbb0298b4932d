package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/banking-services/src/models"
	"github.com/jiaming2012/banking-services/src/telemetry"
	"github.com/jiaming2012/banking-services/src/utils"
)

// CustomerLookup is the external customer capability. Lookup distinguishes
// "not found" (models.ErrCustomerNotFound) from a transport error so callers
// can log the two differently.
type CustomerLookup interface {
	Lookup(ctx context.Context, customerID string) (*models.Customer, error)
}

type CustomerAPIClient struct {
	baseURL string
	client  *http.Client
}

func NewCustomerAPIClient(baseURL string) *CustomerAPIClient {
	return &CustomerAPIClient{
		baseURL: baseURL,
		client:  newServiceHTTPClient(),
	}
}

func (c *CustomerAPIClient) Lookup(ctx context.Context, customerID string) (*models.Customer, error) {
	tracer := otel.Tracer("customer-api")
	ctx, span := tracer.Start(ctx, "CustomerAPIClient.Lookup")
	defer span.End()

	span.SetAttributes(telemetry.NewBusinessContext().CustomerID(customerID).ToAttributes()...)

	var customer models.Customer
	url := fmt.Sprintf("%s/api/customers/%s", c.baseURL, customerID)

	statusCode, err := utils.GetJSON(ctx, c.client, url, &customer)
	if err != nil {
		if statusCode == http.StatusNotFound {
			return nil, models.ErrCustomerNotFound
		}

		return nil, fmt.Errorf("CustomerAPIClient.Lookup: %w", err)
	}

	return &customer, nil
}

func newServiceHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
