package main

import (
	_ "eventos_inscricoes/docs"
	"eventos_inscricoes/internal/adapter/http/routes"
	"eventos_inscricoes/internal/infrastructure/config"
	"eventos_inscricoes/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
)

// @title           Event Registration API
// @version         1.0
// @description     Event registration back office: purchases, payments, registrations and vouchers backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed loading configuration")
	}
	logger.Setup(cfg.Log)

	routes.Run(cfg)
}
