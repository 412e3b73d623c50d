// Package main provides an operator command over the output-file manager
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnendingLoop/ImageOutputs/internal/applog"
	"github.com/UnendingLoop/ImageOutputs/internal/config"
	"github.com/UnendingLoop/ImageOutputs/internal/outputs"
	"github.com/UnendingLoop/ImageOutputs/internal/storage"
	"github.com/wb-go/wbf/zlog"
)

const envFile = "./.env"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	// конфиг: энвы + .env если он есть
	var envFiles []string
	if _, err := os.Stat(envFile); err == nil {
		envFiles = append(envFiles, envFile)
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to check env-file %q: %v", envFile, err)
	}
	appConfig, err := config.Load(envFiles...)
	if err != nil {
		log.Fatalf("Failed to load config: %s\nExiting app...", err)
	}

	// стартуем логгер
	zlog.InitConsole()
	if err := zlog.SetLevel(appConfig.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// подключиться к хранилищу
	strg, err := storage.NewImgStorage(ctx, appConfig)
	if err != nil {
		log.Fatalf("Failed to connect IMG-storage: %v\nExiting app...", err)
	}

	mgr, err := outputs.New(appConfig, strg, applog.NewDefault("outputs"))
	if err != nil {
		log.Fatalf("Failed to init output manager: %v\nExiting app...", err)
	}

	code := run(ctx, mgr, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
