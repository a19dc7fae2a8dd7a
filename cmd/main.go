package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/emberlane/emberlane-backend/internal/app"
)

func main() {
	// Load .env in development without overwriting variables already set in
	// the environment.
	if strings.ToLower(os.Getenv("ENV")) != "production" {
		if envMap, err := godotenv.Read(); err == nil {
			for k, v := range envMap {
				if os.Getenv(k) == "" {
					os.Setenv(k, v)
				}
			}
		}
	}

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		a.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
