package bootstrap

import (
	"context"
	"log"

	"liveshop-chat-be/internal/config"
	"liveshop-chat-be/internal/controller"
	"liveshop-chat-be/internal/handler"
	"liveshop-chat-be/internal/pkg/logger"
	"liveshop-chat-be/internal/repository/implementation"
	"liveshop-chat-be/internal/service"
	"liveshop-chat-be/internal/websocket"
	"liveshop-chat-be/pkg/moderation"

	pktNats "liveshop-chat-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// WebSockets
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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

	// WebSocket Hub (chat traffic gets its own log file)
	chatLogger := logger.NewIsolatedLogger(cfg.App.ChatLogFilePath)
	wsHub := websocket.NewHub(rdb, chatLogger)
	go wsHub.Run()

	// 3. Repositories
	messageRepo := implementation.NewChatMessageRepository(db)
	streamRepo := implementation.NewLiveStreamRepository(db)

	// 4. Services
	roomService := service.NewRoomService(streamRepo, cfg.Chat.RoomCacheTTL)

	masker := moderation.NewMasker(cfg.Chat.ProfanityTerms, cfg.Chat.ProfanityMask)

	// A typed-nil publisher inside the interface would still be non-nil;
	// only wire it when the connection actually came up.
	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	chatService := service.NewChatService(
		messageRepo,
		roomService,
		masker,
		eventPublisher,
		sysLogger,
		cfg.Chat.DefaultPageSize,
		cfg.Chat.MaxPageSize,
	)

	// 5. Gateway & Handlers
	gateway := websocket.NewGateway(wsHub, chatService, roomService, chatLogger)
	streamHandler := handler.NewChatStreamHandler(gateway, chatLogger)

	return &Container{
		ChatController:    controller.NewChatController(chatService),
		ChatStreamHandler: streamHandler,
		WebSocketHub:      wsHub,
	}
}
