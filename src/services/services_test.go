package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/banking-services/src/models"
)

func TestCustomerAPIClient(t *testing.T) {
	t.Run("decodes a known customer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/customers/C-100", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(models.Customer{
				CustomerID: "C-100",
				FirstName:  "Ada",
				Status:     models.CustomerStatusActive,
			})
		}))
		defer server.Close()

		client := NewCustomerAPIClient(server.URL)

		customer, err := client.Lookup(context.Background(), "C-100")
		assert.Nil(t, err)
		assert.Equal(t, "C-100", customer.CustomerID)
		assert.Equal(t, models.CustomerStatusActive, customer.Status)
	})

	t.Run("404 maps to ErrCustomerNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(404)
			json.NewEncoder(w).Encode(models.ErrorDTO{Type: "req", Msg: "customer not found"})
		}))
		defer server.Close()

		client := NewCustomerAPIClient(server.URL)

		_, err := client.Lookup(context.Background(), "C-404")
		assert.ErrorIs(t, err, models.ErrCustomerNotFound)
	})

	t.Run("5xx is a transport error, not a not-found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(500)
		}))
		defer server.Close()

		client := NewCustomerAPIClient(server.URL)

		_, err := client.Lookup(context.Background(), "C-100")
		assert.NotNil(t, err)
		assert.NotErrorIs(t, err, models.ErrCustomerNotFound)
	})

	t.Run("unreachable service is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewCustomerAPIClient(server.URL)

		_, err := client.Lookup(context.Background(), "C-100")
		assert.NotNil(t, err)
		assert.NotErrorIs(t, err, models.ErrCustomerNotFound)
	})
}

func TestCardAPIClient(t *testing.T) {
	t.Run("issues a card", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/cards", r.URL.Path)

			var req IssueCardRequestDTO
			assert.Nil(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "C-100", req.CustomerID)
			assert.Equal(t, "ACC-1", req.AccountID)

			json.NewEncoder(w).Encode(IssueCardResponseDTO{CardID: "CARD-1"})
		}))
		defer server.Close()

		client := NewCardAPIClient(server.URL)

		cardID, err := client.Issue(context.Background(), "C-100", "ACC-1")
		assert.Nil(t, err)
		assert.Equal(t, "CARD-1", cardID)
	})

	t.Run("empty card id is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(IssueCardResponseDTO{})
		}))
		defer server.Close()

		client := NewCardAPIClient(server.URL)

		_, err := client.Issue(context.Background(), "C-100", "ACC-1")
		assert.NotNil(t, err)
	})

	t.Run("error status surfaces the service message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(502)
			json.NewEncoder(w).Encode(models.ErrorDTO{Type: "req", Msg: "issuer offline"})
		}))
		defer server.Close()

		client := NewCardAPIClient(server.URL)

		_, err := client.Issue(context.Background(), "C-100", "ACC-1")
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "issuer offline")
	})
}

func TestLoanAPIClient(t *testing.T) {
	t.Run("returns the eligibility verdict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/loans/eligibility", r.URL.Path)

			eligible := true
			json.NewEncoder(w).Encode(LoanEligibilityResponseDTO{Eligible: &eligible})
		}))
		defer server.Close()

		client := NewLoanAPIClient(server.URL)

		eligible, err := client.CheckEligibility(context.Background(), "C-100", "ACC-1")
		assert.Nil(t, err)
		assert.True(t, eligible)
	})

	t.Run("missing verdict is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{})
		}))
		defer server.Close()

		client := NewLoanAPIClient(server.URL)

		eligible, err := client.CheckEligibility(context.Background(), "C-100", "ACC-1")
		assert.NotNil(t, err)
		assert.False(t, eligible)
	})
}
