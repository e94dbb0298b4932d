package telemetry

import (
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
)

// Namespaced business attribute keys. Keys shared across services must stay
// stable so dashboards can aggregate on them.
const (
	KeyCustomerID        = "business.customer.id"
	KeyAccountID         = "business.account.id"
	KeyAccountType       = "business.account.type"
	KeyAccountBalance    = "business.account.balance"
	KeyCardID            = "business.card.id"
	KeyTransactionID     = "business.transaction.id"
	KeyTransactionAmount = "business.transaction.amount"
	KeyCurrency          = "business.transaction.currency"
	KeyWorkflowName      = "business.workflow.name"
	KeyWorkflowStep      = "business.workflow.step"
	KeyWorkflowStatus    = "business.workflow.status"
	KeyCorrelationID     = "business.correlation.id"
	KeyErrorCode         = "business.error.code"
	KeyErrorType         = "business.error.type"
	KeyProcessingTimeMs  = "business.processing.time_ms"
)

// BusinessContext accumulates domain facts destined for a span or event. It is
// built incrementally as facts become known during a single operation, so
// setting the same attribute twice overwrites the prior value. A context is
// owned by the call site constructing it and must not be shared across
// concurrent operations.
type BusinessContext struct {
	attributes map[string]interface{}
}

func NewBusinessContext() *BusinessContext {
	return &BusinessContext{
		attributes: make(map[string]interface{}),
	}
}

func (c *BusinessContext) Set(key string, value interface{}) *BusinessContext {
	c.attributes[key] = value
	return c
}

func (c *BusinessContext) CustomerID(id string) *BusinessContext {
	return c.Set(KeyCustomerID, id)
}

func (c *BusinessContext) AccountID(id string) *BusinessContext {
	return c.Set(KeyAccountID, id)
}

func (c *BusinessContext) AccountType(accountType string) *BusinessContext {
	return c.Set(KeyAccountType, accountType)
}

func (c *BusinessContext) AccountBalance(balance float64) *BusinessContext {
	return c.Set(KeyAccountBalance, balance)
}

func (c *BusinessContext) CardID(id string) *BusinessContext {
	return c.Set(KeyCardID, id)
}

func (c *BusinessContext) TransactionID(id string) *BusinessContext {
	return c.Set(KeyTransactionID, id)
}

func (c *BusinessContext) TransactionAmount(amount float64) *BusinessContext {
	return c.Set(KeyTransactionAmount, amount)
}

func (c *BusinessContext) Currency(currency string) *BusinessContext {
	return c.Set(KeyCurrency, currency)
}

func (c *BusinessContext) WorkflowName(name string) *BusinessContext {
	return c.Set(KeyWorkflowName, name)
}

func (c *BusinessContext) WorkflowStep(step string) *BusinessContext {
	return c.Set(KeyWorkflowStep, step)
}

func (c *BusinessContext) WorkflowStatus(status string) *BusinessContext {
	return c.Set(KeyWorkflowStatus, status)
}

func (c *BusinessContext) CorrelationID(id string) *BusinessContext {
	return c.Set(KeyCorrelationID, id)
}

func (c *BusinessContext) ErrorCode(code string) *BusinessContext {
	return c.Set(KeyErrorCode, code)
}

func (c *BusinessContext) ErrorType(errorType string) *BusinessContext {
	return c.Set(KeyErrorType, errorType)
}

func (c *BusinessContext) ProcessingTimeMs(ms int64) *BusinessContext {
	return c.Set(KeyProcessingTimeMs, ms)
}

// ToAttributes converts the accumulated map into an immutable attribute set.
// Unknown value types always fall back to their string representation, so the
// conversion has no failure mode.
func (c *BusinessContext) ToAttributes() []attribute.KeyValue {
	keys := make([]string, 0, len(c.attributes))
	for key := range c.attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(keys))
	for _, key := range keys {
		switch v := c.attributes[key].(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		case int:
			attrs = append(attrs, attribute.Int64(key, int64(v)))
		case int32:
			attrs = append(attrs, attribute.Int64(key, int64(v)))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case float32:
			attrs = append(attrs, attribute.Float64(key, float64(v)))
		case float64:
			attrs = append(attrs, attribute.Float64(key, v))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}

	return attrs
}
