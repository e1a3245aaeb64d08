package routes

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "eventos_inscricoes/docs" // swag generated
	"eventos_inscricoes/internal/adapter/cache"
	"eventos_inscricoes/internal/adapter/http/handlers"
	"eventos_inscricoes/internal/adapter/http/middleware"
	"eventos_inscricoes/internal/adapter/messaging"
	"eventos_inscricoes/internal/adapter/persistence/repository"
	"eventos_inscricoes/internal/infrastructure/auth"
	rediscache "eventos_inscricoes/internal/infrastructure/cache"
	"eventos_inscricoes/internal/infrastructure/config"
	"eventos_inscricoes/internal/infrastructure/database"
	"eventos_inscricoes/internal/infrastructure/payments"
	"eventos_inscricoes/internal/infrastructure/storage"
	"eventos_inscricoes/internal/usecase"
	"eventos_inscricoes/internal/usecase/interfaces"
)

const shutdownTimeout = 10 * time.Second

type routeHandlers struct {
	checkout     *handlers.CheckoutHandler
	payment      *handlers.PaymentHandler
	registration *handlers.RegistrationHandler
	voucher      *handlers.VoucherHandler
	migration    *handlers.MigrationHandler
}

// Run wires the dependencies and serves the API until SIGINT/SIGTERM.
func Run(cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verifier, err := auth.NewJWTVerifier(cfg.Auth)
	if err != nil {
		log.WithError(err).Fatal("[api][routes] identity verifier not configured")
	}

	publisher := messaging.NewEventPublisher(cfg.Kafka)
	if closer, ok := publisher.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.WithError(err).Warn("[api][routes] closing event publisher")
			}
		}()
	}

	h, err := buildHandlers(ctx, cfg, publisher)
	if err != nil {
		log.WithError(err).Fatal("[api][routes] failed wiring dependencies")
	}

	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	protected := v1.Group("", middleware.BearerAuth(verifier))
	addCheckoutRoutes(protected, h.checkout, h.payment, h.registration, h.voucher)
	addRegistrationRoutes(protected, h.registration)
	addVoucherRoutes(protected, h.voucher)
	addAdminRoutes(protected, h.migration)

	srv := &http.Server{Addr: ":" + cfg.HTTP.Port, Handler: router}
	go func() {
		log.WithField("port", cfg.HTTP.Port).Info("[api][routes] listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("[api][routes] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("[api][routes] graceful shutdown failed")
	}
}

func buildHandlers(ctx context.Context, cfg config.Config, publisher interfaces.IEventPublisher) (routeHandlers, error) {
	ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
	if err != nil {
		return routeHandlers{}, err
	}
	s3Client, err := storage.ConnectS3(ctx, cfg.AWS)
	if err != nil {
		return routeHandlers{}, err
	}

	checkoutRepo := repository.NewCheckoutDynamoRepository(ddb, cfg.Tables.Checkouts, cfg.Tables.DeletedCheckouts)
	registrationRepo := repository.NewRegistrationDynamoRepository(ddb, cfg.Tables.Registrations)
	voucherRepo := repository.NewVoucherDynamoRepository(ddb, cfg.Tables.Vouchers)
	ledger := repository.NewSeatLedgerDynamo(ddb, cfg.Tables.Checkouts, cfg.Tables.Registrations)
	eventRepo := cache.NewCachedEventRepository(
		repository.NewEventDynamoRepository(ddb, cfg.Tables.Events),
		rediscache.NewRedisClient(ctx, cfg.Redis),
		cfg.Redis.EventTTL,
	)
	attachments := storage.NewS3AttachmentStorage(s3Client, cfg.Storage.AttachmentsBucket)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments)
	if err != nil {
		log.WithError(err).Warn("[api][routes] Mercado Pago gateway not configured")
	} else {
		paymentGateway = mpGateway
	}

	checkoutUseCase := usecase.NewCheckoutUseCase(checkoutRepo, registrationRepo, voucherRepo, eventRepo, publisher)
	registrationUseCase := usecase.NewRegistrationUseCase(registrationRepo, checkoutRepo, ledger, publisher)
	voucherUseCase := usecase.NewVoucherUseCase(voucherRepo, checkoutRepo, registrationRepo, eventRepo, ledger, publisher)
	paymentUseCase := usecase.NewPaymentUseCase(
		checkoutRepo, registrationRepo, voucherRepo, eventRepo, attachments, paymentGateway, publisher,
		usecase.PaymentOptions{
			GatewayMock:        cfg.Payments.GatewayMock,
			Sandbox:            cfg.Payments.Sandbox || payments.IsSandboxToken(cfg.Payments.MercadoPagoAccessToken),
			SandboxPayerEmail:  cfg.Payments.SandboxPayerEmail,
			SandboxPayerUserID: cfg.Payments.SandboxPayerUserID,
		},
	)
	migrationUseCase := usecase.NewMigrationUseCase(checkoutRepo, registrationRepo, voucherRepo)

	return routeHandlers{
		checkout:     handlers.NewCheckoutHandler(checkoutUseCase),
		payment:      handlers.NewPaymentHandler(paymentUseCase, cfg.HTTP.MaxUploadBytes, cfg.Payments.GatewayMock),
		registration: handlers.NewRegistrationHandler(registrationUseCase),
		voucher:      handlers.NewVoucherHandler(voucherUseCase),
		migration:    handlers.NewMigrationHandler(migrationUseCase),
	}, nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(middleware.RequestLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("path", c.FullPath()).Errorf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
