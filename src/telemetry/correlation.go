package telemetry

import (
	"github.com/google/uuid"
)

// NewCorrelationID mints the opaque token that unites all spans and events of
// one workflow invocation. It is propagation-only metadata and never gates
// behavior.
func NewCorrelationID() string {
	return uuid.NewString()
}
