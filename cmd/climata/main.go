package main

import (
	"os"

	"github.com/wonny/climata/cmd/climata/commands"
)

// main is the entry point for the climata CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/climata [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
