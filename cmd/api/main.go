package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/misstera/social-agent-be/internal/config"
	"github.com/misstera/social-agent-be/internal/database"
	"github.com/misstera/social-agent-be/internal/handlers"
	"github.com/misstera/social-agent-be/internal/observability/metrics"
	"github.com/misstera/social-agent-be/internal/repositories"
	"github.com/misstera/social-agent-be/internal/security"
	"github.com/misstera/social-agent-be/internal/services"
	"github.com/misstera/social-agent-be/internal/shared/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting %s in %s mode", cfg.AppName, cfg.Env)

	// A bad key must stop the process before it accepts traffic.
	encryptor, err := security.NewEncryptor(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	customerRepo := repositories.NewCustomerRepo(db.GORM)
	convRepo := repositories.NewConversationRepo(db.GORM)

	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)
	aiService := services.NewAIService(cfg.GroqAPIKey, pipelineMetrics)
	pipeline := services.NewConversationService(aiService, customerRepo, convRepo, encryptor, pipelineMetrics)
	simulator := services.NewSocialSimulator()

	healthHandler := handlers.NewHealthHandler(db, cfg.AppName)
	chatHandler := handlers.NewChatHandler(pipeline)
	customerHandler := handlers.NewCustomerHandler(customerRepo, convRepo, encryptor)
	demoHandler := handlers.NewDemoHandler(simulator, pipeline)

	app := fiber.New(fiber.Config{AppName: cfg.AppName})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", healthHandler.GetRoot)
	app.Get("/health", healthHandler.GetHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/customers/", customerHandler.CreateCustomer)
	app.Get("/customers/", customerHandler.ListCustomers)
	app.Get("/conversations/:customer_id", customerHandler.GetConversationHistory)

	app.Post("/ai/chat", chatHandler.PostChat)
	app.Get("/ai/chat-test", chatHandler.GetChatTest)

	demo := app.Group("/demo")
	demo.Get("/simulate/message", demoHandler.SimulateMessage)
	demo.Post("/process/simulated", demoHandler.ProcessSimulated)
	demo.Get("/dashboard", demoHandler.Dashboard)
	demo.Post("/live", demoHandler.LiveDemo)

	// Optional auto-traffic for demos, e.g. DEMO_AUTO_SCHEDULE="@every 1m".
	if cfg.DemoAutoSchedule != "" {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.DemoAutoSchedule, func() {
			msg := simulator.SimulateIncoming("")
			result, err := pipeline.ProcessMessage(context.Background(), msg.Message, msg.UserID, msg.Platform)
			if err != nil {
				log.Printf("⚠️ Auto-demo processing failed: %v", err)
				return
			}
			simulator.RecordAgentReply(msg.UserID, result.Response)
		})
		if err != nil {
			log.Fatalf("❌ Invalid DEMO_AUTO_SCHEDULE: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Printf("⏰ Auto-demo traffic scheduled: %s", cfg.DemoAutoSchedule)
	}

	log.Printf("🚀 API running at :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
