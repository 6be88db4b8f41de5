package bootstrap

import (
	"context"
	"log"
	"time"

	"virtual-lab-be/internal/config"
	"virtual-lab-be/internal/controller"
	"virtual-lab-be/internal/handler"
	"virtual-lab-be/internal/lab"
	"virtual-lab-be/internal/lab/catalog"
	"virtual-lab-be/internal/pkg/logger"
	"virtual-lab-be/internal/repository/implementation"
	"virtual-lab-be/internal/repository/memory"
	"virtual-lab-be/internal/repository/unitofwork"
	"virtual-lab-be/internal/service"
	"virtual-lab-be/internal/websocket"
	pktNats "virtual-lab-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const activityTopic = "LAB_ACTIVITY"

type Container struct {
	// Controllers
	LabController      controller.ILabController
	ProgressController controller.IProgressController
	LabNoteController  controller.ILabNoteController
	ActivityController controller.IActivityController

	// Background Services (Exposed for main.go to run)
	ActivityService service.IActivityService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Blueprint Catalog
	if err := catalog.Validate(); err != nil {
		log.Fatalf("[FATAL] Invalid lab catalog: %v", err)
	}
	blueprints := catalog.All()

	// 3. Event Bus (in-process, for the activity timeline)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// In-memory session store for live experiments
	sessionRepo := memory.NewSessionRepository(
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		time.Duration(cfg.Session.CleanupMinutes)*time.Minute,
	)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
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
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	activityPublisher := service.NewPublisherService(activityTopic, pubSub)
	activityService := service.NewActivityService(pubSub, activityTopic, uowFactory, sysLogger)

	progressService := service.NewProgressService(uowFactory, cfg.Progress, sysLogger)

	// The interface must stay nil when NATS is down; a typed nil
	// pointer inside it would not be.
	var eventPub service.EventPublisher
	if natsPub != nil {
		eventPub = natsPub
	}

	sessionService := service.NewLabSessionService(
		blueprints,
		sessionRepo,
		lab.NewScheduler(),
		websocket.NewSinkProvider(wsHub),
		progressService,
		eventPub,
		activityPublisher,
		sysLogger,
	)

	noteService := service.NewLabNoteService(uowFactory, activityPublisher)

	// 6. Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 7. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		LabController:       controller.NewLabController(sessionService),
		ProgressController:  controller.NewProgressController(progressService, len(blueprints)),
		LabNoteController:   controller.NewLabNoteController(noteService),
		ActivityController:  controller.NewActivityController(activityService),

		ActivityService: activityService,
	}
}
