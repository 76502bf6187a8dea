package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"

	discordclient "firstmessage/clients/discord"
	"firstmessage/config"
	"firstmessage/core/log"
	"firstmessage/handlers"
	"firstmessage/middleware"
	"firstmessage/services/firstmessage"
	discordusecase "firstmessage/usecases/discord"
	"firstmessage/utils"
)

type Options struct {
	EnvFile     string `long:"env-file" description:"Path to a .env file to load before reading the environment" default:".env"`
	LogLevel    string `long:"log-level" description:"Log level (debug, info, warn, error)" default:"info"`
	KeepCommand bool   `long:"keep-command" description:"Leave the /firstmessage command registered with Discord on shutdown"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.SetLevel(log.ParseLevel(opts.LogLevel))

	if err := run(opts); err != nil {
		log.Error("❌ Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	cfg, err := config.LoadConfig(opts.EnvFile)
	if err != nil {
		return err
	}

	instanceLock, err := utils.NewInstanceLock("", cfg.DiscordConfig.AppID)
	if err != nil {
		return err
	}
	if err := instanceLock.TryLock(); err != nil {
		return err
	}
	defer func() {
		if err := instanceLock.Unlock(); err != nil {
			log.Warn("⚠️ Failed to release instance lock", "error", err)
		}
	}()

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "firstmessage",
		LogsURL:     cfg.ServerLogsURL,
	})

	session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	// Slash commands arrive as interactions, which need no privileged intents
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	searchClient := discordclient.NewDiscordSearchClient(session, cfg.SearchConfig.Timeout)
	firstMessageService := firstmessage.NewFirstMessageService(searchClient, cfg.SearchConfig.DeepLinkBase)
	commandsUseCase := discordusecase.NewDiscordCommandsUseCase(firstMessageService)
	commandsHandler := handlers.NewDiscordCommandsHandler(
		session,
		cfg.DiscordConfig.AppID,
		cfg.DiscordConfig.GuildID,
		commandsUseCase,
		alertMiddleware,
		cfg.MaxConcurrentCommands,
	)

	if err := commandsHandler.StartBot(); err != nil {
		return err
	}

	router := mux.NewRouter()
	handlers.SetupHealthEndpoint(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(router),
		ReadHeaderTimeout: 30 * time.Second,
	}

	shutdownErr := handleGracefulShutdown(server)

	if err := commandsHandler.StopBot(opts.KeepCommand); err != nil {
		log.Error("❌ Failed to stop Discord bot cleanly", "error", err)
		return err
	}
	log.Info("✅ Discord bot stopped")
	return shutdownErr
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("✅ Health endpoint listening", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
		log.Info("🛑 Shutdown signal received, cleaning up...")
	case err := <-serverErr:
		log.Error("❌ Server error", "error", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("❌ Server shutdown error", "error", err)
		return err
	}

	log.Info("✅ Server stopped gracefully")
	return nil
}
