package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrewwphillips/eggql"
	goversion "github.com/caarlos0/go-version"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"libraryql/config"
	"libraryql/internal/auth"
	"libraryql/internal/graph"
	"libraryql/internal/pubsub"
	"libraryql/internal/repository"
)

const path = "/graphql"

// set by the linker on release builds
var (
	version = "0.0.1"
	commit  = ""
	date    = ""
	builtBy = ""
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(buildVersion())
		return
	}

	cfg := config.MustLoad()
	setupLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	// A server without its database answers nothing correctly, so a failed
	// connection is fatal rather than degraded.
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		slog.Error("error connecting to MongoDB", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := client.Ping(ctx, nil); err != nil {
		slog.Error("error pinging MongoDB", slog.String("err", err.Error()))
		os.Exit(1)
	}
	slog.Info("connected to MongoDB", slog.String("database", cfg.Mongo.Database))

	store := repository.NewMongoRepo(client.Database(cfg.Mongo.Database))
	if err := store.Init(ctx); err != nil {
		slog.Error("error creating indexes", slog.String("err", err.Error()))
		os.Exit(1)
	}

	bus := pubsub.New[graph.Book]()
	tokens := auth.NewTokens(cfg.JWT.Secret)

	query, mutation, subscription := graph.New(store, bus, tokens)
	handler := eggql.MustRun(query, mutation, subscription)
	// Note: no http.TimeoutHandler here - its ResponseWriter cannot be
	// hijacked, which would break the subscription websocket upgrade.
	handler = auth.NewHandler(tokens, store, handler)

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	go func() {
		slog.Info("starting server", slog.String("address", cfg.Address), slog.String("path", path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt

	slog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}

func buildVersion() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails("libraryql", "GraphQL API for a small book library", ""),
		func(i *goversion.Info) {
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
