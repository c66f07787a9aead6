package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/inkwell-ai/inkwell/internal/adapters/driving/cli"
)

func main() {
	// Pick up OPENAI_API_KEY / ANTHROPIC_API_KEY from a local .env if
	// present; absence is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
