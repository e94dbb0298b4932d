package eventpubsub

import (
	"time"

	"github.com/jiaming2012/banking-services/src/models"
)

const OnboardingWorkflowCompleted = "onboarding.workflow.completed"

type OnboardingWorkflowCompletedEvent struct {
	CorrelationID  string
	CustomerID     string
	AccountID      string
	CardID         string
	LoanEligible   bool
	Status         models.WorkflowStatus
	Errors         []string
	ProcessingTime time.Duration
}
