package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/visualhealth/internal/config"
	"github.com/example/visualhealth/internal/database"
	"github.com/example/visualhealth/internal/routes"
	"github.com/example/visualhealth/internal/store"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL, cfg.DatabaseName)
	defer database.Disconnect(db)

	app := fiber.New(fiber.Config{
		AppName: "Visual Health Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Register(app, store.NewMongo(db), cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
