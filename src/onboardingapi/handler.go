package onboardingapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/banking-services/src/data"
	"github.com/jiaming2012/banking-services/src/models"
	"github.com/jiaming2012/banking-services/src/workflows"
)

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := models.ErrorDTO{
		Type: errType,
		Msg:  err.Error(),
	}

	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}

type apiHandler struct {
	workflow *workflows.OnboardingWorkflow
	accounts data.Repository[models.Account]
	cards    data.Repository[models.Card]
}

func (h *apiHandler) processOnboarding(w http.ResponseWriter, r *http.Request) {
	var req models.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if respErr := setErrorResponse("validation", 400, fmt.Errorf("processOnboarding: decode request: %w", err), w); respErr != nil {
			log.Errorf("processOnboarding: failed to set error response: %v", respErr)
		}
		return
	}

	// Workflow outcomes, FAILED included, are always a structured 200 response
	result := h.workflow.ProcessOnboarding(r.Context(), req)

	if err := setResponse(models.NewOnboardingResponse(result), w); err != nil {
		log.Errorf("processOnboarding: failed to set response: %v", err)
	}
}

type getAccountStatusQuery struct {
	IncludeCards bool `schema:"includeCards"`
}

type AccountStatusResponse struct {
	Account models.Account `json:"account"`
	Cards   []models.Card  `json:"cards,omitempty"`
}

func (h *apiHandler) getAccountStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accountID, found := vars["accountId"]
	if !found {
		err := fmt.Errorf("getAccountStatus: could not find accountId in request params")
		if respErr := setErrorResponse("validation", 400, err, w); respErr != nil {
			log.Errorf("getAccountStatus: failed to set error response: %v", respErr)
		}
		return
	}

	var query getAccountStatusQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		if respErr := setErrorResponse("validation", 400, fmt.Errorf("getAccountStatus: decode query: %w", err), w); respErr != nil {
			log.Errorf("getAccountStatus: failed to set error response: %v", respErr)
		}
		return
	}

	account, err := h.accounts.FindByID(r.Context(), accountID)
	if err != nil {
		statusCode := 500
		if errors.Is(err, models.ErrRecordNotFound) {
			statusCode = 404
		}

		if respErr := setErrorResponse("req", statusCode, fmt.Errorf("getAccountStatus: %w", err), w); respErr != nil {
			log.Errorf("getAccountStatus: failed to set error response: %v", respErr)
		}
		return
	}

	response := AccountStatusResponse{
		Account: account,
	}

	if query.IncludeCards {
		allCards, err := h.cards.FindAll(r.Context())
		if err != nil {
			if respErr := setErrorResponse("req", 500, fmt.Errorf("getAccountStatus: %w", err), w); respErr != nil {
				log.Errorf("getAccountStatus: failed to set error response: %v", respErr)
			}
			return
		}

		for _, card := range allCards {
			if card.AccountID == accountID {
				response.Cards = append(response.Cards, card)
			}
		}
	}

	if err := setResponse(response, w); err != nil {
		log.Errorf("getAccountStatus: failed to set response: %v", err)
	}
}

func SetupHandler(router *mux.Router, workflow *workflows.OnboardingWorkflow, accounts data.Repository[models.Account], cards data.Repository[models.Card]) {
	handler := &apiHandler{
		workflow: workflow,
		accounts: accounts,
		cards:    cards,
	}

	router.HandleFunc("", handler.processOnboarding).Methods("POST")
	router.HandleFunc("/accounts/{accountId}", handler.getAccountStatus).Methods("GET")
}
