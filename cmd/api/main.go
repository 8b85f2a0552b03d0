package main

import (
	"os"

	"github.com/sesa/portal/internal/pkg/logger"
	"github.com/sesa/portal/internal/server"
)

// @title SESA Portal API
// @version 1.0
// @description REST API for the student engineering association portal: departments, resource library, association newspaper, member directory and department chat.

// @contact.name Portal Maintainers
// @contact.email portal@sesa.org

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
