package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"blogsite/internal/authorservice"
	"blogsite/internal/blogservice"
	"blogsite/internal/common"
	"blogsite/internal/mailservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	authorService *authorservice.AuthorService
	blogService   *blogservice.BlogService
	mailService   *mailservice.MailService
	broker        *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("could not load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("could not connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	mbURL := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(mbURL)
	if err != nil {
		logger.Error("could not connect to message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	if err := common.SetupAuthorExchange(broker); err != nil {
		logger.Error("could not set up author exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := application{
		config:        cfg,
		logger:        logger,
		authorService: authorservice.NewAuthorService(db, broker, []byte(cfg.JWTSecret)),
		blogService:   blogservice.NewBlogService(db, common.NewCache(5*time.Minute, 10*time.Minute)),
		mailService:   mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:        broker,
	}

	go app.mailService.SendWelcomeEmail()
	defer app.mailService.Close()

	if err := app.serve(cfg.Port); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
