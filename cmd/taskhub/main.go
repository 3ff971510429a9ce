package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/taskhub/taskhub/internal/cli"
)

func main() {
	// Optional .env for TASKHUB_SECRET and friends; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
