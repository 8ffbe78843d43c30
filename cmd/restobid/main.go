package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/paramount/restobid/internal/cmd"
)

func main() {
	// Optional .env for deployment overrides; absence is not an error.
	godotenv.Load()

	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
