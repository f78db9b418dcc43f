// Package main is the entry point for the API server. It loads
// configuration, connects to PostgreSQL and Redis and starts the HTTP
// listener.
package main

import (
	"context"

	"custodia/internal/config"
	"custodia/internal/repositories"
	"custodia/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if config.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	db, err := repositories.OpenDB()
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient := repositories.NewRedisClient(&repositories.RedisConfig{
		Addr:     config.GetEnv("REDIS_ADDR", "localhost:6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	app := fiber.New()
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	routes.SetupRoutes(app, db, redisClient)

	port := config.GetEnv("PORT", "3000")
	logrus.Infof("server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
