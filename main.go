package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"

	"edutrack_backend/internals/configs"
	database "edutrack_backend/internals/databases"
	scheduler "edutrack_backend/internals/features/users/auth/scheduler"
	middlewares "edutrack_backend/internals/middlewares"
	routes "edutrack_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    8 * 1024 * 1024,
	})

	// request id + timing, logged on every request
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("X-Request-ID", reqID)
		err := c.Next()
		log.Printf("[INFO] %s %s %d %s rid=%s",
			c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start), reqID)
		return err
	})

	middlewares.SetupMiddlewares(app)
	app.Use(compress.New())
	app.Use(etag.New())

	database.ConnectDB()
	database.Migrate()
	database.TunePool()

	scheduler.StartOTPCleanupScheduler(database.DB)

	routes.SetupRoutes(app, database.DB)

	// graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("⚠️ Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("❌ Server shutdown failed: %v", err)
		}
		database.Close()
	}()

	port := configs.GetEnv("PORT", "3000")
	log.Println("✅ Server listening on port", port)
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
	log.Println("✅ Server exited cleanly")
}
