package main

import (
	"log"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/config"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/handler"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/middleware"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/repository"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/service"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/pkg/database"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load("5002")

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("RabbitMQ unavailable, notifications disabled: %v", err)
	} else {
		defer publisher.Close()
	}

	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)

	eventSvc := service.NewEventService(eventRepo, publisher)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "admin-service"})
	})

	api := e.Group("/api/v1/events", middleware.RequireAuth(authSvc))
	handler.NewEventHandler(eventSvc).RegisterRoutes(api)

	log.Printf("Admin Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
