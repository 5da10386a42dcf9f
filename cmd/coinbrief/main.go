package main

import (
	"os"

	"coinbrief/cmd/handlers"
	"coinbrief/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	if err := handlers.Execute(); err != nil {
		os.Exit(1)
	}
}
