package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/quizmize/backend/internal/db"
	"github.com/quizmize/backend/internal/handlers"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/media"
	"github.com/quizmize/backend/internal/middleware"
	"github.com/quizmize/backend/internal/observability"
	"github.com/quizmize/backend/internal/realtime"
	"github.com/quizmize/backend/internal/repos"
	"github.com/quizmize/backend/internal/server"
	"github.com/quizmize/backend/internal/services"
	"github.com/quizmize/backend/internal/utils"
)

const serviceName = "quizmize-backend"

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)

	// Tracing
	shutdownTracing := observability.InitTracing(context.Background(), log, observability.TracingConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownTracing != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				log.Warn("Tracing shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Media
	mediaStore, err := media.NewDiskStore(log)
	if err != nil {
		log.Error("Could not init media store", "error", err)
		os.Exit(1)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	groupRepo := repos.NewGroupRepo(thePG, log)
	postRepo := repos.NewPostRepo(thePG, log)
	missionRepo := repos.NewMissionRepo(thePG, log)
	universityRepo := repos.NewUniversityRepo(thePG, log)
	chatRepo := repos.NewChatMessageRepo(thePG, log)
	quizRepo := repos.NewQuizCatalogRepo(thePG, log)

	// Realtime
	log.Info("Setting up realtime hub now...")
	hub := realtime.NewHub(log)
	var bus realtime.Bus
	if os.Getenv("REDIS_ADDR") != "" {
		bus, err = realtime.NewRedisBus(log)
		if err != nil {
			log.Warn("Redis bus init failed, falling back to local broadcast", "error", err)
			bus = nil
		} else {
			if err := bus.StartForwarder(context.Background(), hub.Broadcast); err != nil {
				log.Warn("Redis bus forwarder failed to start", "error", err)
				bus = nil
			}
		}
	}
	notifier := realtime.NewNotifier(log, hub, bus)

	// Services
	log.Info("Setting up Services from main...")
	avatarService, err := services.NewAvatarService(thePG, log, mediaStore)
	if err != nil {
		log.Error("Could not init AvatarService", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(thePG, log, userRepo, avatarService, jwtSecretKey)
	userService := services.NewUserService(thePG, log, userRepo, avatarService)
	groupService := services.NewGroupService(thePG, log, groupRepo, userRepo, notifier)
	postService := services.NewPostService(thePG, log, postRepo, groupRepo, userRepo, groupService, notifier)
	missionService := services.NewMissionService(thePG, log, missionRepo, groupRepo, userRepo, groupService, notifier)
	universityService := services.NewUniversityService(thePG, log, universityRepo, userRepo)
	chatService := services.NewChatService(thePG, log, chatRepo, groupRepo, userRepo, notifier)
	quizService := services.NewQuizCatalogService(thePG, log, quizRepo)

	// Mission deadline sweep
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := missionService.ExpireOverdue(ctx); err != nil {
				log.Warn("Mission expiry sweep failed", "error", err)
			} else if n > 0 {
				log.Info("Expired overdue missions", "count", n)
			}
			cancel()
		}
	}()

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(log, authService)
	userHandler := handlers.NewUserHandler(log, userService)
	groupHandler := handlers.NewGroupHandler(log, groupService, chatService)
	postHandler := handlers.NewPostHandler(log, postService)
	missionHandler := handlers.NewMissionHandler(log, missionService)
	universityHandler := handlers.NewUniversityHandler(log, universityService)
	quizHandler := handlers.NewQuizHandler(log, quizService)
	wsHandler := handlers.NewWSHandler(log, hub, chatService, groupService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService, userRepo)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:       serviceName,
		MediaDir:          mediaStore.Dir(),
		AuthMiddleware:    authMiddleware,
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		GroupHandler:      groupHandler,
		PostHandler:       postHandler,
		MissionHandler:    missionHandler,
		UniversityHandler: universityHandler,
		QuizHandler:       quizHandler,
		WSHandler:         wsHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
