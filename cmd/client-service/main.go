package main

import (
	"log"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/config"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/handler"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/middleware"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/repository"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/service"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/pkg/database"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/pkg/llm"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load("5001")

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("RabbitMQ unavailable, notifications disabled: %v", err)
	} else {
		defer publisher.Close()
	}

	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo, publisher)

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
		return c.JSON(200, map[string]string{"status": "ok", "service": "client-service"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)

	if cfg.OpenAIKey != "" {
		completer := llm.NewClient(cfg.OpenAIKey, cfg.OpenAIModel)
		handler.NewChatHandler(completer, bookingSvc).RegisterRoutes(e)
	} else {
		log.Println("OPENAI_API_KEY not set, chat assistant disabled")
	}

	log.Printf("Client Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
