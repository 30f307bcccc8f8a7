package main

import (
	"restaurant-directory/core/logger"
	"restaurant-directory/core/server"

	_ "restaurant-directory/docs" // Swagger docs
)

// @title Restaurant Directory API
// @version 1.0
// @description Restaurant directory with opening-hours search

// @contact.name API Support
// @contact.email support@restaurant-directory.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
