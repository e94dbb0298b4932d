package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiaming2012/banking-services/src/data"
	"github.com/jiaming2012/banking-services/src/models"
)

// LocalCustomerLookup serves customer verification from the service's own
// store. Used when the service runs standalone without a customer service to
// call.
type LocalCustomerLookup struct {
	customers data.Repository[models.Customer]
}

func NewLocalCustomerLookup(customers data.Repository[models.Customer]) *LocalCustomerLookup {
	return &LocalCustomerLookup{
		customers: customers,
	}
}

func (l *LocalCustomerLookup) Lookup(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, err := l.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.ErrCustomerNotFound
		}

		return nil, fmt.Errorf("LocalCustomerLookup.Lookup: %w", err)
	}

	return &customer, nil
}
