package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/auth"
	authPostgres "github.com/gatherhub/community/internal/auth/postgres"
	"github.com/gatherhub/community/internal/comment"
	commentPostgres "github.com/gatherhub/community/internal/comment/postgres"
	"github.com/gatherhub/community/internal/core/events"
	"github.com/gatherhub/community/internal/group"
	groupPostgres "github.com/gatherhub/community/internal/group/postgres"
	"github.com/gatherhub/community/internal/membership"
	membershipPostgres "github.com/gatherhub/community/internal/membership/postgres"
	"github.com/gatherhub/community/internal/notification"
	notificationPostgres "github.com/gatherhub/community/internal/notification/postgres"
	"github.com/gatherhub/community/internal/post"
	postPostgres "github.com/gatherhub/community/internal/post/postgres"
	"github.com/gatherhub/community/internal/transport/rest"
	"github.com/gatherhub/community/internal/user"
	userPostgres "github.com/gatherhub/community/internal/user/postgres"
	"github.com/gatherhub/community/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router chi.Router
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)

	// repositories
	authRepo := authPostgres.NewAuthRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)
	groupRepo := groupPostgres.NewGroupRepository(gormDB)
	membershipRepo := membershipPostgres.NewMembershipRepository(gormDB)
	postRepo := postPostgres.NewPostRepository(gormDB)
	commentRepo := commentPostgres.NewCommentRepository(gormDB)
	notificationRepo := notificationPostgres.NewNotificationRepository(gormDB)

	// services
	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGenerator, config.Security.BCryptCost)
	userService := user.NewService(userRepo, config.Security.BCryptCost, appLogger)
	membershipService := membership.NewService(membershipRepo, groupRepo, appLogger)
	groupService := group.NewService(groupRepo, membershipService, eventBus, appLogger)
	postService := post.NewService(postRepo, membershipService, appLogger)
	commentService := comment.NewService(commentRepo, postRepo, membershipService, appLogger)

	notifier := notification.NewNotifier(notificationRepo, appLogger)
	notifier.RegisterHandlers(eventBus)

	handlers := rest.Handlers{
		Health:       rest.NewHealthHandler(db.DB),
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Group:        group.NewHandler(groupService, config.Server.BaseURL),
		Membership:   membership.NewHandler(membershipService),
		Post:         post.NewHandler(postService),
		Comment:      comment.NewHandler(commentService),
		Notification: notification.NewHandler(notifier),
	}

	router := rest.NewRouter(handlers, appLogger)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		Router: router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the existing connection pool. TranslateError maps the
// driver's duplicate-key failures onto gorm.ErrDuplicatedKey, which the
// repositories rely on for "already joined" and "email taken".
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		TranslateError: true,
	})
}
