package main

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"time"

	"github.com/inkstone-dev/inkstone/internal/blogservice"
	"github.com/inkstone-dev/inkstone/internal/common"
	"github.com/inkstone-dev/inkstone/internal/mailservice"
	"github.com/inkstone-dev/inkstone/internal/userservice"
	"github.com/inkstone-dev/inkstone/migrations"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	templateCache map[string]*template.Template
	userService   *userservice.UserService
	blogService   *blogservice.BlogService
	mailService   *mailservice.MailService
	broker        common.MessageProducer
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Open the database file, creating it if absent, and bring the schema up
	// to date.
	db, err := common.NewDB(cfg.DBPath, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to open the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	if err := common.MigrateDB(db, migrations.FS); err != nil {
		logger.Error("failed to migrate the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to the message broker and declare the mail exchange
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	if err := common.SetupMailExchange(broker); err != nil {
		logger.Error("failed to setup the mail exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	templateCache, err := newTemplateCache()
	if err != nil {
		logger.Error("failed to build the template cache", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		templateCache: templateCache,
		userService:   userservice.NewUserService(db, broker, cfg.SessionSecret),
		blogService:   blogservice.NewBlogService(db),
		mailService:   mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailContact, cfg.MailPort, logger),
		broker:        broker,
	}

	// Start the mail consumers
	app.mailService.SendWelcomeEmail()
	app.mailService.SendContactEmail()
	defer app.mailService.Close()

	// Sweep expired sessions in the background
	go app.cleanupSessions()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func (app *application) cleanupSessions() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := app.userService.DeleteExpiredSessions(ctx); err != nil {
			app.logger.Error("failed to delete expired sessions", slog.String("error", err.Error()))
		}
		cancel()
	}
}
