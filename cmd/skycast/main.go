package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/skycast-labs/skycast-cli/internal/adapters/driving/cli"
)

func main() {
	// A missing .env is fine; the environment and config file still apply.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
