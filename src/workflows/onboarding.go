package workflows

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/banking-services/src/data"
	"github.com/jiaming2012/banking-services/src/eventpubsub"
	"github.com/jiaming2012/banking-services/src/models"
	"github.com/jiaming2012/banking-services/src/services"
	"github.com/jiaming2012/banking-services/src/telemetry"
)

const workflowName = "customer-onboarding"

// Workflow stage names as recorded on spans.
const (
	stepCustomerVerification = "CUSTOMER_VERIFICATION"
	stepAccountCreation      = "ACCOUNT_CREATION"
	stepCardIssuance         = "CARD_ISSUANCE"
	stepLoanEligibility      = "LOAN_ELIGIBILITY"
)

type Publisher interface {
	Publish(topic string, event interface{})
}

// OnboardingWorkflow orchestrates the onboarding sequence: verify the
// customer, provision an account, optionally issue a card and check loan
// eligibility. Customer verification failure is fatal; the remaining stages
// are best-effort and only degrade the result. Already-created resources are
// not compensated when a later stage fails.
type OnboardingWorkflow struct {
	customers services.CustomerLookup
	accounts  data.Repository[models.Account]
	cards     services.CardIssuer
	loans     services.LoanEligibilityChecker
	publisher Publisher
	config    models.OnboardingConfigYAML
}

func NewOnboardingWorkflow(customers services.CustomerLookup, accounts data.Repository[models.Account], cards services.CardIssuer, loans services.LoanEligibilityChecker, publisher Publisher, config models.OnboardingConfigYAML) *OnboardingWorkflow {
	return &OnboardingWorkflow{
		customers: customers,
		accounts:  accounts,
		cards:     cards,
		loans:     loans,
		publisher: publisher,
		config:    config,
	}
}

// ProcessOnboarding runs the workflow synchronously and always returns a
// well-formed result; status and errors are the sole failure signal.
func (w *OnboardingWorkflow) ProcessOnboarding(ctx context.Context, req models.OnboardingRequest) (result *models.WorkflowResult) {
	start := time.Now()
	result = models.NewWorkflowResult(req.CustomerID)

	if err := req.Validate(); err != nil {
		result.Status = models.WorkflowStatusFailed
		result.AppendError("Customer ID is required")
		result.ProcessingTime = time.Since(start)
		return result
	}

	req.ApplyDefaults(w.config.DefaultAccountType)

	correlationID := telemetry.NewCorrelationID()

	requestCtx := telemetry.NewBusinessContext().
		WorkflowName(workflowName).
		WorkflowStatus(string(models.WorkflowStatusInProgress)).
		CorrelationID(correlationID).
		CustomerID(req.CustomerID).
		AccountType(req.AccountType).
		Set("business.account.initial_deposit", req.InitialDeposit).
		Set("business.card.requested", req.RequestCreditCard).
		Set("business.loan.check_requested", req.CheckLoanEligibility)

	tracer := otel.Tracer(workflowName)
	ctx, span := tracer.Start(ctx, "onboarding-workflow", trace.WithAttributes(requestCtx.ToAttributes()...))
	defer span.End()

	logger := log.WithContext(ctx).WithField("correlation_id", correlationID)

	defer func() {
		result.ProcessingTime = time.Since(start)

		if result.Status != models.WorkflowStatusFailed {
			if len(result.Errors) == 0 {
				result.Status = models.WorkflowStatusSuccess
			} else {
				result.Status = models.WorkflowStatusPartialSuccess
			}
		}

		span.SetAttributes(telemetry.NewBusinessContext().
			WorkflowStatus(string(result.Status)).
			ProcessingTimeMs(result.ProcessingTime.Milliseconds()).
			ToAttributes()...)

		if result.Status == models.WorkflowStatusFailed {
			span.SetStatus(codes.Error, "onboarding workflow failed")
		}

		w.publishCompleted(correlationID, result)

		logger.WithField("status", result.Status).Infof("ProcessOnboarding: completed in %v", result.ProcessingTime)
	}()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("ProcessOnboarding: unexpected workflow error: %v", r)
			logger.Errorf("%v", err)

			span.RecordError(err)
			span.SetAttributes(telemetry.NewBusinessContext().ErrorType(models.ErrorTypeWorkflow).ToAttributes()...)

			result.Status = models.WorkflowStatusFailed
			result.AppendError("Unexpected workflow error")
		}
	}()

	// Stage 1: failure here is fatal to the workflow
	if _, err := w.verifyCustomer(ctx, correlationID, req.CustomerID); err != nil {
		if errors.Is(err, models.ErrCustomerNotFound) {
			logger.Warnf("ProcessOnboarding: customer %s not found", req.CustomerID)
		} else {
			logger.Errorf("ProcessOnboarding: customer lookup failed: %v", err)
		}

		result.Status = models.WorkflowStatusFailed
		result.AppendError("Customer not found")
		return result
	}

	// Stage 2: failure degrades the result but does not abort it
	account, err := w.createAccount(ctx, correlationID, req)
	if err != nil {
		logger.Errorf("ProcessOnboarding: account creation failed: %v", err)
		result.AppendError("Failed to create account")
	} else {
		result.AccountID = account.AccountID
	}

	// Stages 3 and 4 are guarded by account presence, not by flag alone
	if req.RequestCreditCard && result.AccountID != "" {
		cardID, err := w.issueCard(ctx, correlationID, req.CustomerID, result.AccountID)
		if err != nil {
			logger.Errorf("ProcessOnboarding: card issuance failed: %v", err)
			result.AppendError("Failed to issue credit card")
		} else {
			result.CardID = cardID
		}
	}

	if req.CheckLoanEligibility && result.AccountID != "" {
		eligible, err := w.checkLoanEligibility(ctx, correlationID, req.CustomerID, result.AccountID)
		if err != nil {
			logger.Errorf("ProcessOnboarding: loan eligibility check failed: %v", err)
			result.AppendError("Failed to check loan eligibility")
		} else {
			result.LoanEligible = eligible
		}
	}

	return result
}

func (w *OnboardingWorkflow) verifyCustomer(ctx context.Context, correlationID string, customerID string) (*models.Customer, error) {
	tracer := otel.Tracer(workflowName)
	ctx, span := tracer.Start(ctx, "onboarding-workflow:verify-customer")
	defer span.End()

	stepCtx := telemetry.NewBusinessContext().
		WorkflowStep(stepCustomerVerification).
		CorrelationID(correlationID).
		CustomerID(customerID)

	span.SetAttributes(stepCtx.ToAttributes()...)
	span.AddEvent("step started", trace.WithAttributes(stepCtx.ToAttributes()...))

	customer, err := w.customers.Lookup(ctx, customerID)
	if err != nil {
		recordStepError(span, models.ErrorTypeValidation, "CUSTOMER_NOT_FOUND", err)
		return nil, err
	}

	span.AddEvent("step completed", trace.WithAttributes(stepCtx.ToAttributes()...))
	return customer, nil
}

func (w *OnboardingWorkflow) createAccount(ctx context.Context, correlationID string, req models.OnboardingRequest) (models.Account, error) {
	tracer := otel.Tracer(workflowName)
	ctx, span := tracer.Start(ctx, "onboarding-workflow:create-account")
	defer span.End()

	stepCtx := telemetry.NewBusinessContext().
		WorkflowStep(stepAccountCreation).
		CorrelationID(correlationID).
		CustomerID(req.CustomerID).
		AccountType(req.AccountType)

	span.SetAttributes(stepCtx.ToAttributes()...)
	span.AddEvent("step started", trace.WithAttributes(stepCtx.ToAttributes()...))

	deposit, err := strconv.ParseFloat(req.InitialDeposit, 64)
	if err != nil {
		err = fmt.Errorf("createAccount: invalid initial deposit %q: %w", req.InitialDeposit, err)
		recordStepError(span, models.ErrorTypeValidation, "INVALID_DEPOSIT", err)
		return models.Account{}, err
	}

	account := models.Account{
		AccountID:   fmt.Sprintf("ACC-%s", uuid.NewString()),
		CustomerID:  req.CustomerID,
		AccountType: models.AccountType(req.AccountType),
		Status:      models.AccountStatusActive,
		Currency:    w.config.Currency,
		Balance:     deposit,
	}

	saved, err := w.accounts.Save(ctx, account)
	if err != nil {
		recordStepError(span, models.ErrorTypeDatabase, "ACCOUNT_CREATION_FAILED", err)
		return models.Account{}, fmt.Errorf("createAccount: %w", err)
	}

	stepCtx.AccountID(saved.AccountID).AccountBalance(saved.Balance).Currency(saved.Currency)
	span.SetAttributes(stepCtx.ToAttributes()...)
	span.AddEvent("step completed", trace.WithAttributes(stepCtx.ToAttributes()...))

	return saved, nil
}

func (w *OnboardingWorkflow) issueCard(ctx context.Context, correlationID string, customerID string, accountID string) (string, error) {
	tracer := otel.Tracer(workflowName)
	ctx, span := tracer.Start(ctx, "onboarding-workflow:issue-card")
	defer span.End()

	stepCtx := telemetry.NewBusinessContext().
		WorkflowStep(stepCardIssuance).
		CorrelationID(correlationID).
		CustomerID(customerID).
		AccountID(accountID)

	span.SetAttributes(stepCtx.ToAttributes()...)
	span.AddEvent("step started", trace.WithAttributes(stepCtx.ToAttributes()...))

	cardID, err := w.cards.Issue(ctx, customerID, accountID)
	if err != nil {
		recordStepError(span, models.ErrorTypeService, "CARD_ISSUANCE_FAILED", err)
		return "", fmt.Errorf("issueCard: %w", err)
	}

	stepCtx.CardID(cardID)
	span.SetAttributes(stepCtx.ToAttributes()...)
	span.AddEvent("step completed", trace.WithAttributes(stepCtx.ToAttributes()...))

	return cardID, nil
}

func (w *OnboardingWorkflow) checkLoanEligibility(ctx context.Context, correlationID string, customerID string, accountID string) (bool, error) {
	tracer := otel.Tracer(workflowName)
	ctx, span := tracer.Start(ctx, "onboarding-workflow:check-loan-eligibility")
	defer span.End()

	stepCtx := telemetry.NewBusinessContext().
		WorkflowStep(stepLoanEligibility).
		CorrelationID(correlationID).
		CustomerID(customerID).
		AccountID(accountID)

	span.SetAttributes(stepCtx.ToAttributes()...)
	span.AddEvent("step started", trace.WithAttributes(stepCtx.ToAttributes()...))

	eligible, err := w.loans.CheckEligibility(ctx, customerID, accountID)
	if err != nil {
		recordStepError(span, models.ErrorTypeService, "LOAN_ELIGIBILITY_FAILED", err)
		return false, fmt.Errorf("checkLoanEligibility: %w", err)
	}

	stepCtx.Set("business.loan.eligible", eligible)
	span.SetAttributes(stepCtx.ToAttributes()...)
	span.AddEvent("step completed", trace.WithAttributes(stepCtx.ToAttributes()...))

	return eligible, nil
}

func (w *OnboardingWorkflow) publishCompleted(correlationID string, result *models.WorkflowResult) {
	if w.publisher == nil {
		return
	}

	w.publisher.Publish(eventpubsub.OnboardingWorkflowCompleted, eventpubsub.OnboardingWorkflowCompletedEvent{
		CorrelationID:  correlationID,
		CustomerID:     result.CustomerID,
		AccountID:      result.AccountID,
		CardID:         result.CardID,
		LoanEligible:   result.LoanEligible,
		Status:         result.Status,
		Errors:         result.Errors,
		ProcessingTime: result.ProcessingTime,
	})
}

func recordStepError(span trace.Span, errorType string, errorCode string, err error) {
	span.RecordError(err)
	span.SetAttributes(telemetry.NewBusinessContext().
		ErrorType(errorType).
		ErrorCode(errorCode).
		ToAttributes()...)
	span.SetStatus(codes.Error, "workflow step failed")
}
