package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/kasbook/internal/commands"
)

// @title Kasbook API
// @version 1.0
// @description Petty-cash, cash-flow and sales bookkeeping.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
