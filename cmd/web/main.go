package main

import (
	"coffeezone_backend/internal/app"
	"coffeezone_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("Server stopped", "error", err)
	}
}
