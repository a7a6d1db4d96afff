package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirehub/cmd"
	"hirehub/internal/data/repository"
	"hirehub/internal/wire"
	"hirehub/pkg/database"
	"hirehub/pkg/mailer"
	"hirehub/pkg/metrics"
	"hirehub/pkg/social"
	"hirehub/pkg/utils"

	"go.uber.org/zap"
)

const usage = `usage: hirehub [serve | migrate | create-admin <email> <password>]`

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	switch command {
	case "serve":
		err = serve(ctx, repos, config, logger)
	case "migrate":
		err = database.Migrate(ctx, db)
		if err == nil {
			logger.Info("Schema applied")
		}
	case "create-admin":
		if len(os.Args) != 4 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		user, cerr := cmd.CreateAdmin(ctx, repos, config.JWT.BcryptCost, os.Args[2], os.Args[3])
		if cerr == nil {
			logger.Info("Admin account created", zap.String("user_id", user.ID.String()), zap.String("email", user.Email))
		}
		err = cerr
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Fatal("Command failed", zap.String("command", command), zap.Error(err))
	}
}

func serve(ctx context.Context, repos *repository.Repository, config *utils.Config, logger *zap.Logger) error {
	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory rate limiting", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	sender, closeMailer, err := mailer.New(config, logger)
	if err != nil {
		return err
	}
	defer closeMailer()

	if config.Queue.Worker {
		var delivery mailer.Sender = mailer.NewConsoleSender(logger)
		if config.Email.Host != "" {
			delivery = mailer.NewSMTPSender(config.Email, logger)
		}
		worker := mailer.NewWorker(config.Queue.URL, config.Queue.MailQueue, delivery, logger)
		go func() {
			if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Mail worker stopped", zap.Error(err))
			}
		}()
	}

	go cmd.RunJanitor(ctx, repos.Session, time.Hour, logger)

	// Wire all dependencies
	app := wire.Wiring(ctx, wire.Infra{
		Repo:      repos,
		Mailer:    sender,
		Redis:     rdb,
		Providers: social.NewProviders(config.Social, logger),
		Metrics:   metrics.New(),
	}, config, logger)

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))
	err = cmd.APIServer(ctx, app.Router, config.App.Port, logger)

	// let reset mail already accepted go out before the mailer closes
	app.Service.Wait()
	return err
}
