package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"enhancements/internal/adapters/filesystem"
	mcpadapter "enhancements/internal/adapters/mcp"
	"enhancements/internal/bootstrap"
	"enhancements/internal/config"
	"enhancements/internal/logging"
)

func main() {
	settings := config.FromEnv()
	flag.StringVar(&settings.VaultPath, "vault", settings.VaultPath, "path to the vault")
	flag.StringVar(&settings.ConfigDir, "config-dir", settings.ConfigDir, "vault config folder")
	flag.StringVar(&settings.DataStore, "data-store", settings.DataStore, "json or sqlite")
	flag.BoolVar(&settings.EnableScripts, "enable-scripts", settings.EnableScripts, "allow execute-lua actions")
	flag.StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "debug, info, warn or error")
	flag.Parse()

	// stdout carries the MCP protocol
	logging.Setup(os.Stderr, settings.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	statusBar := filesystem.NewStatusBar()
	session, err := bootstrap.Open(ctx, settings, statusBar)
	if err != nil {
		log.Fatalf("enhancements-mcp: %v", err)
	}
	defer session.Close()

	mcpServer := server.NewMCPServer(
		"enhancements-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, session.Plugin, session.Scanner, statusBar)
	mcpadapter.RegisterTriggerTools(mcpServer, session.Plugin, session.Scanner)

	if err := server.ServeStdio(mcpServer); err != nil {
		session.Close()
		log.Fatalf("enhancements-mcp: %v", err)
	}
}
