package bootstrap

import (
	"context"
	"log"

	"immoflow-be/internal/config"
	"immoflow-be/internal/controller"
	"immoflow-be/internal/handler"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/pkg/mailer"
	"immoflow-be/internal/repository/implementation"
	"immoflow-be/internal/repository/memory"
	"immoflow-be/internal/repository/unitofwork"
	"immoflow-be/internal/service"
	"immoflow-be/internal/websocket"
	"immoflow-be/pkg/admin/certification"
	"immoflow-be/pkg/admin/dashboard"
	adminEvents "immoflow-be/pkg/admin/events"
	"immoflow-be/pkg/admin/rolechange"
	"immoflow-be/pkg/storage"

	pkgNats "immoflow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RoleChangeController    controller.IRoleChangeController
	CertificationController controller.ICertificationController
	MandateController       controller.IMandateController
	AdminController         controller.IAdminController

	// Background Services (Exposed for main.go to run)
	DocumentProcessor service.IDocumentProcessorService
	Sweeper           service.ISweeperService

	// WebSockets & Alerts
	AlertHandler *handler.AlertHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/alerts.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Document storage
	store := storage.NewLocalAdapter(cfg.Storage.UploadDir, cfg.App.BaseURL)

	// 3. Services
	documentPipeline := service.NewPublisherService(cfg.Storage.DocumentTopicName, pubSub)
	documentProcessor := service.NewDocumentProcessorService(
		pubSub,
		cfg.Storage.DocumentTopicName,
		cfg.Storage.UploadDir,
		uowFactory,
	)

	prereqCache := memory.NewPrerequisiteCache()
	prerequisiteService := service.NewPrerequisiteService(uowFactory, prereqCache, sysLogger)

	// Workflow Domain Components
	eventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	roleChangeProcessor := rolechange.NewProcessor(sysLogger, eventPublisher)
	certificationReviewer := certification.NewReviewer(sysLogger, eventPublisher)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	roleChangeService := service.NewRoleChangeService(
		uowFactory,
		prerequisiteService,
		store,
		eventPublisher,
		documentPipeline,
		sysLogger,
	)
	certificationService := service.NewCertificationService(
		uowFactory,
		store,
		eventPublisher,
		documentPipeline,
		sysLogger,
	)
	mandateService := service.NewMandateService(uowFactory, eventPublisher, sysLogger)

	adminService := service.NewAdminService(
		uowFactory,
		roleChangeProcessor,
		certificationReviewer,
		dashboardAggregator,
		emailService,
		sysLogger,
	)

	sweeper := service.NewSweeperService(
		uowFactory,
		roleChangeProcessor,
		certificationReviewer,
		eventPublisher,
		cfg.Review.SweepIntervalSeconds,
		sysLogger,
	)

	// 3.5 Alert System
	alertRepo := implementation.NewAlertRepository(db)
	alertService := service.NewAlertService(alertRepo, natsSub, wsHub, wsLogger)

	// Start Worker
	if natsSub != nil {
		go alertService.Start()
	}

	alertHandler := handler.NewAlertHandler(alertService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AlertHandler: alertHandler,
		WebSocketHub: wsHub,

		RoleChangeController:    controller.NewRoleChangeController(roleChangeService, prerequisiteService),
		CertificationController: controller.NewCertificationController(certificationService),
		MandateController:       controller.NewMandateController(mandateService),
		AdminController:         controller.NewAdminController(adminService),

		DocumentProcessor: documentProcessor,
		Sweeper:           sweeper,
	}
}
