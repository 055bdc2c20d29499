package main

import (
	"log"

	"docinherit/internal/server"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the saved docstrings over MCP on stdio",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		store, err := initStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		if err := mcpserver.ServeStdio(server.New(cfg, store)); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}
