package main

import (
	"log"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/config"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/handler"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/middleware"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/repository"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/service"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/pkg/database"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load("5003")

	db := database.NewPostgresDB(cfg.DSN())

	userRepo := repository.NewUserRepository(db)
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
		return c.JSON(200, map[string]string{"status": "ok", "service": "auth-service"})
	})

	api := e.Group("/api/v1/auth")
	handler.NewAuthHandler(authSvc).RegisterRoutes(api)

	log.Printf("Auth Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
