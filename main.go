package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"mandorpro-backend/config"
	"mandorpro-backend/controllers"
	"mandorpro-backend/models"
	"mandorpro-backend/routes"
	"mandorpro-backend/services"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Mandor{},
		&models.Service{},
		&models.Order{},
		&models.Schedule{},
		&models.Rab{},
		&models.RabItem{},
		&models.Portfolio{},
		&models.NotificationLog{},
		&models.PushSubscription{},
	)
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	controllers.UploadDir = cfg.Upload.Dir
	controllers.UploadPublicPath = cfg.Upload.PublicPath

	notifier := services.NewNotifier(config.DB)
	notifier.StartScheduler()

	var pushPool *services.PushPool
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		pushPool = services.NewPushPool(cfg.WorkerPool.Size, config.DB, &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		})
		pushPool.Start(context.Background())
	} else {
		log.Println("VAPID keys not configured, browser push disabled")
	}

	controllers.UseServices(notifier, pushPool)

	r := routes.SetupRouter(cfg)
	printRoutes(r)
	r.Run(fmt.Sprintf(":%d", cfg.Server.Port))
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
