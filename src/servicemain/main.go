package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/banking-services/src/data"
	"github.com/jiaming2012/banking-services/src/dbutils"
	"github.com/jiaming2012/banking-services/src/eventpubsub"
	"github.com/jiaming2012/banking-services/src/models"
	"github.com/jiaming2012/banking-services/src/onboardingapi"
	"github.com/jiaming2012/banking-services/src/services"
	"github.com/jiaming2012/banking-services/src/telemetry"
	"github.com/jiaming2012/banking-services/src/utils"
	"github.com/jiaming2012/banking-services/src/workflows"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Fatalf("failed to init environment variables: %v", err)
	}

	log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
		log.WarnLevel,
		log.InfoLevel,
	)))

	otelShutdown, err := telemetry.SetupOTelSDK(ctx, "banking-onboarding")
	if err != nil {
		log.Fatalf("failed to setup otel sdk: %v", err)
	}

	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			log.Errorf("failed to shutdown otel sdk: %v", err)
		}
	}()

	postgresHost, err := utils.GetEnv("POSTGRES_HOST")
	if err != nil {
		log.Fatalf("$POSTGRES_HOST not set: %v", err)
	}

	postgresPort, err := utils.GetEnv("POSTGRES_PORT")
	if err != nil {
		log.Fatalf("$POSTGRES_PORT not set: %v", err)
	}

	postgresUser, err := utils.GetEnv("POSTGRES_USER")
	if err != nil {
		log.Fatalf("$POSTGRES_USER not set: %v", err)
	}

	postgresPassword, err := utils.GetEnv("POSTGRES_PASSWORD")
	if err != nil {
		log.Fatalf("$POSTGRES_PASSWORD not set: %v", err)
	}

	postgresDb, err := utils.GetEnv("POSTGRES_DB")
	if err != nil {
		log.Fatalf("$POSTGRES_DB not set: %v", err)
	}

	cardServiceURL, err := utils.GetEnv("CARD_SERVICE_URL")
	if err != nil {
		log.Fatalf("$CARD_SERVICE_URL not set: %v", err)
	}

	loanServiceURL, err := utils.GetEnv("LOAN_SERVICE_URL")
	if err != nil {
		log.Fatalf("$LOAN_SERVICE_URL not set: %v", err)
	}

	port, err := utils.GetEnv("PORT")
	if err != nil {
		log.Fatalf("$PORT not set: %v", err)
	}

	db, err := dbutils.InitPostgres(postgresHost, postgresPort, postgresUser, postgresPassword, postgresDb)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	// Load workflow defaults; fall back to the built-in config when no file is
	// configured
	onboardingConfig := loadOnboardingConfig()

	bus := eventpubsub.New()
	if err := bus.Subscribe(eventpubsub.OnboardingWorkflowCompleted, auditOnboardingCompleted); err != nil {
		log.Fatalf("failed to subscribe audit consumer: %v", err)
	}

	accounts := data.NewAccountRepository(db)
	cards := data.NewCardRepository(db)

	// Standalone deployments have no customer service to call; verify
	// customers against our own store instead.
	var customerLookup services.CustomerLookup
	if customerServiceURL, err := utils.GetEnv("CUSTOMER_SERVICE_URL"); err == nil {
		customerLookup = services.NewCustomerAPIClient(customerServiceURL)
	} else {
		log.Info("$CUSTOMER_SERVICE_URL not set, serving customer lookups from the local store")

		customerLookup = services.NewLocalCustomerLookup(data.NewCustomerRepository(db))
	}

	workflow := workflows.NewOnboardingWorkflow(
		customerLookup,
		accounts,
		services.NewCardAPIClient(cardServiceURL),
		services.NewLoanAPIClient(loanServiceURL),
		bus,
		onboardingConfig,
	)

	router := mux.NewRouter()
	onboardingapi.SetupHandler(router.PathPrefix("/onboarding").Subrouter(), workflow, accounts, cards)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: otelhttp.NewHandler(router, "onboarding-http"),
	}

	go func() {
		log.Infof("listening on :%s", port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shutdown server: %v", err)
	}

	log.Info("shutdown complete")
}

func loadOnboardingConfig() models.OnboardingConfigYAML {
	config := models.NewDefaultOnboardingConfig()

	projectsDir := os.Getenv("PROJECTS_DIR")
	configFile := os.Getenv("ONBOARDING_CONFIG_FILE")
	if configFile == "" {
		return config
	}

	configPath := path.Join(projectsDir, "banking-services", "src", configFile)
	payload, err := os.ReadFile(configPath)
	if err != nil {
		log.Fatalf("failed to read onboarding config: %v", err)
	}

	if err := yaml.Unmarshal(payload, &config); err != nil {
		log.Fatalf("failed to unmarshal onboarding config: %v", err)
	}

	return config
}

func auditOnboardingCompleted(event eventpubsub.OnboardingWorkflowCompletedEvent) {
	log.WithFields(log.Fields{
		"correlation_id":  event.CorrelationID,
		"customer_id":     event.CustomerID,
		"account_id":      event.AccountID,
		"status":          event.Status,
		"processing_time": event.ProcessingTime.String(),
	}).Info("onboarding workflow completed")
}
