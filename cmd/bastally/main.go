package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cleared-dev/bastally/internal/commands"
)

func main() {
	// A .env file may carry BASTALLY_* overrides; it is optional.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
