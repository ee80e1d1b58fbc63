// Chain harness MCP server.
// Exposes harness tools over MCP stdio transport.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gateway-fm/chainharness/internal/config"
	"github.com/gateway-fm/chainharness/internal/harness"
	mcptools "github.com/gateway-fm/chainharness/internal/mcp"
)

func main() {
	cfg, err := config.Load(flag.NewFlagSet("mcp", flag.ExitOnError), os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Stdout carries the MCP transport; logs go to stderr.
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	h, err := harness.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "harness init error: %v\n", err)
		os.Exit(1)
	}
	defer h.Close()

	if err := h.Start(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "harness start error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"chainharness",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	mcptools.RegisterTools(s, h)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}
