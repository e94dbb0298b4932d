package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/banking-services/src/models"
)

type stubCustomerStore struct {
	customers map[string]models.Customer
	findErr   error
}

func (s *stubCustomerStore) Save(ctx context.Context, entity models.Customer) (models.Customer, error) {
	s.customers[entity.CustomerID] = entity
	return entity, nil
}

func (s *stubCustomerStore) FindByID(ctx context.Context, id string) (models.Customer, error) {
	if s.findErr != nil {
		return models.Customer{}, s.findErr
	}

	customer, found := s.customers[id]
	if !found {
		return models.Customer{}, models.ErrRecordNotFound
	}

	return customer, nil
}

func (s *stubCustomerStore) FindAll(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	for _, customer := range s.customers {
		out = append(out, customer)
	}

	return out, nil
}

func (s *stubCustomerStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, found := s.customers[id]
	return found, nil
}

func (s *stubCustomerStore) DeleteByID(ctx context.Context, id string) error {
	delete(s.customers, id)
	return nil
}

func (s *stubCustomerStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.customers)), nil
}

func TestLocalCustomerLookup(t *testing.T) {
	t.Run("returns a stored customer", func(t *testing.T) {
		store := &stubCustomerStore{customers: map[string]models.Customer{
			"C-100": {CustomerID: "C-100", FirstName: "Ada", Status: models.CustomerStatusActive},
		}}

		lookup := NewLocalCustomerLookup(store)

		customer, err := lookup.Lookup(context.Background(), "C-100")
		assert.Nil(t, err)
		assert.Equal(t, "C-100", customer.CustomerID)
	})

	t.Run("missing record maps to ErrCustomerNotFound", func(t *testing.T) {
		store := &stubCustomerStore{customers: map[string]models.Customer{}}

		lookup := NewLocalCustomerLookup(store)

		_, err := lookup.Lookup(context.Background(), "C-404")
		assert.ErrorIs(t, err, models.ErrCustomerNotFound)
	})

	t.Run("store failures pass through as service errors", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		store := &stubCustomerStore{customers: map[string]models.Customer{}, findErr: storeErr}

		lookup := NewLocalCustomerLookup(store)

		_, err := lookup.Lookup(context.Background(), "C-100")
		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, models.ErrCustomerNotFound)
	})
}
