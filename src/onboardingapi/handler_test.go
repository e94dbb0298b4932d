package onboardingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/banking-services/src/models"
	"github.com/jiaming2012/banking-services/src/workflows"
)

type stubCustomerLookup struct {
	customers map[string]*models.Customer
}

func (s *stubCustomerLookup) Lookup(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, found := s.customers[customerID]
	if !found {
		return nil, models.ErrCustomerNotFound
	}

	return customer, nil
}

type stubCardIssuer struct{}

func (s *stubCardIssuer) Issue(ctx context.Context, customerID string, accountID string) (string, error) {
	return "CARD-1", nil
}

type stubLoanChecker struct{}

func (s *stubLoanChecker) CheckEligibility(ctx context.Context, customerID string, accountID string) (bool, error) {
	return true, nil
}

type memoryStore[T models.Identifiable] struct {
	entities []T
}

func (m *memoryStore[T]) Save(ctx context.Context, entity T) (T, error) {
	m.entities = append(m.entities, entity)
	return entity, nil
}

func (m *memoryStore[T]) FindByID(ctx context.Context, id string) (T, error) {
	for _, entity := range m.entities {
		if entity.EntityID() == id {
			return entity, nil
		}
	}

	var zero T
	return zero, models.ErrRecordNotFound
}

func (m *memoryStore[T]) FindAll(ctx context.Context) ([]T, error) {
	return m.entities, nil
}

func (m *memoryStore[T]) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, err := m.FindByID(ctx, id)
	return err == nil, nil
}

func (m *memoryStore[T]) DeleteByID(ctx context.Context, id string) error {
	return nil
}

func (m *memoryStore[T]) Count(ctx context.Context) (int64, error) {
	return int64(len(m.entities)), nil
}

func setupTestRouter(knownCustomers ...string) (*mux.Router, *memoryStore[models.Account], *memoryStore[models.Card]) {
	customers := &stubCustomerLookup{customers: make(map[string]*models.Customer)}
	for _, id := range knownCustomers {
		customers.customers[id] = &models.Customer{CustomerID: id, Status: models.CustomerStatusActive}
	}

	accounts := &memoryStore[models.Account]{}
	cards := &memoryStore[models.Card]{}

	workflow := workflows.NewOnboardingWorkflow(
		customers,
		accounts,
		&stubCardIssuer{},
		&stubLoanChecker{},
		nil,
		models.NewDefaultOnboardingConfig(),
	)

	router := mux.NewRouter()
	SetupHandler(router.PathPrefix("/onboarding").Subrouter(), workflow, accounts, cards)

	return router, accounts, cards
}

func TestProcessOnboardingHandler(t *testing.T) {
	t.Run("successful onboarding returns a structured response", func(t *testing.T) {
		router, _, _ := setupTestRouter("C-100")

		payload := `{"customerId":"C-100","initialDeposit":"500.00","accountType":"SAVINGS"}`
		req := httptest.NewRequest("POST", "/onboarding", strings.NewReader(payload))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, 200, recorder.Code)

		var response models.OnboardingResponse
		assert.Nil(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, models.WorkflowStatusSuccess, response.Status)
		assert.Equal(t, "C-100", response.CustomerID)
		assert.NotEmpty(t, response.AccountID)
		assert.Empty(t, response.CardID)
		assert.Empty(t, response.Errors)
		assert.True(t, strings.HasSuffix(response.ProcessingTime, "ms"))
	})

	t.Run("workflow failure is still a structured 200 response", func(t *testing.T) {
		router, _, _ := setupTestRouter()

		payload := `{"customerId":"C-404"}`
		req := httptest.NewRequest("POST", "/onboarding", strings.NewReader(payload))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, 200, recorder.Code)

		var response models.OnboardingResponse
		assert.Nil(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, models.WorkflowStatusFailed, response.Status)
		assert.Equal(t, []string{"Customer not found"}, response.Errors)
	})

	t.Run("undecodable body is a 400", func(t *testing.T) {
		router, _, _ := setupTestRouter()

		req := httptest.NewRequest("POST", "/onboarding", bytes.NewReader([]byte("{not json")))
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, 400, recorder.Code)

		var errDTO models.ErrorDTO
		assert.Nil(t, json.NewDecoder(recorder.Body).Decode(&errDTO))
		assert.Equal(t, "validation", errDTO.Type)
	})
}

func TestGetAccountStatusHandler(t *testing.T) {
	t.Run("returns the persisted account", func(t *testing.T) {
		router, accounts, _ := setupTestRouter()
		accounts.entities = append(accounts.entities, models.Account{
			AccountID:  "ACC-1",
			CustomerID: "C-100",
			Status:     models.AccountStatusActive,
			Currency:   "USD",
		})

		req := httptest.NewRequest("GET", "/onboarding/accounts/ACC-1", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, 200, recorder.Code)

		var response AccountStatusResponse
		assert.Nil(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Equal(t, "ACC-1", response.Account.AccountID)
		assert.Empty(t, response.Cards)
	})

	t.Run("includeCards returns only the account's cards", func(t *testing.T) {
		router, accounts, cards := setupTestRouter()
		accounts.entities = append(accounts.entities, models.Account{AccountID: "ACC-1", CustomerID: "C-100"})
		cards.entities = append(cards.entities,
			models.Card{CardID: "CARD-1", AccountID: "ACC-1", CustomerID: "C-100"},
			models.Card{CardID: "CARD-2", AccountID: "ACC-2", CustomerID: "C-200"},
		)

		req := httptest.NewRequest("GET", "/onboarding/accounts/ACC-1?includeCards=true", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, 200, recorder.Code)

		var response AccountStatusResponse
		assert.Nil(t, json.NewDecoder(recorder.Body).Decode(&response))
		assert.Len(t, response.Cards, 1)
		assert.Equal(t, "CARD-1", response.Cards[0].CardID)
	})

	t.Run("unknown account is a 404", func(t *testing.T) {
		router, _, _ := setupTestRouter()

		req := httptest.NewRequest("GET", "/onboarding/accounts/ACC-404", nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, req)

		assert.Equal(t, 404, recorder.Code)
	})
}
