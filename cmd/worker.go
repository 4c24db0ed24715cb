package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gatherhub/community/internal/core/events"
	"github.com/gatherhub/community/internal/notification"
	notificationPostgres "github.com/gatherhub/community/internal/notification/postgres"
	"github.com/gatherhub/community/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers, such as the notification event consumer.`,
}

// Event bus worker command
var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus with the notification handler subscribed, for debugging event flow.`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

func startEventWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	appLogger := logger.LoggerWrapper()

	db, err := gorm.Open(gormpostgres.Open(config.Database.Source), &gorm.Config{TranslateError: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect database: %v\n", err)
		os.Exit(1)
	}

	eventBus := events.NewEventBus(appLogger)
	notifier := notification.NewNotifier(notificationPostgres.NewNotificationRepository(db), appLogger)
	notifier.RegisterHandlers(eventBus)

	appLogger.Info("event worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	appLogger.Info("event worker stopping", "signal", sig)
}

func init() {
	workerCmd.AddCommand(eventWorkerCmd)
}
