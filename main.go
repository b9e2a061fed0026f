package main

import (
	"fmt"
	"os"

	"github.com/JeremyDev87/leonidas/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is the normal case outside local development
	_ = godotenv.Load()
	if err := cmd.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize commands: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
