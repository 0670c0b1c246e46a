package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/moody/moodyserver/analytics"
	"github.com/moody/moodyserver/config"
	"github.com/moody/moodyserver/database"
	"github.com/moody/moodyserver/gcp"
	"github.com/moody/moodyserver/handlers"
	"github.com/moody/moodyserver/llm"
	"github.com/moody/moodyserver/middleware"
	"github.com/moody/moodyserver/safety"
)

func main() {
	// .env is optional; real deployments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if err := database.Init(cfg); err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("database migration error: %v", err)
	}
	cancel()

	// provider clients; unconfigured keys leave the corresponding
	// feature on its degraded path instead of failing startup
	var sentiment safety.SentimentProvider
	var topics safety.TopicClassifier
	if cfg.LanguageAPIKey != "" {
		lang := gcp.NewLanguageClient(cfg.LanguageAPIKey, cfg.ProviderTimeout)
		sentiment, topics = lang, lang
	} else {
		log.Println("Warning: GOOGLE_LANGUAGE_API_KEY not set, sentiment and topic signals disabled")
	}

	var generator handlers.Generator
	if cfg.GeminiAPIKey != "" {
		generator = llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ProviderTimeout)
	} else {
		log.Println("Warning: Gemini API key not configured, all replies use the fallback responder")
	}

	var translator *gcp.TranslateClient
	if cfg.TranslateAPIKey != "" {
		translator = gcp.NewTranslateClient(cfg.TranslateAPIKey, cfg.ProviderTimeout)
	} else {
		log.Println("Warning: GOOGLE_TRANSLATE_API_KEY not set, language endpoints disabled")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
	} else {
		log.Println("Warning: REDIS_URL not set, rate limiting is per-instance only")
	}

	tracker := analytics.NewTracker()
	classifier := safety.NewClassifier(sentiment, topics)
	tokens := middleware.NewTokenManager(cfg)
	limiter := middleware.NewRateLimiter(rdb)

	authHandler := handlers.NewAuthHandler(tokens)
	chatHandler := handlers.NewChatHandler(generator, classifier, tracker)
	ventHandler := handlers.NewVentHandler(generator, classifier, tracker)
	translatorHandler := handlers.NewTranslatorHandler(generator, classifier, translatorOrNil(translator), tracker)
	moodHandler := handlers.NewMoodHandler()
	languageHandler := handlers.NewLanguageHandler(languageOrNil(translator), tracker)
	analyticsHandler := handlers.NewAnalyticsHandler(tracker)
	privacyHandler := handlers.NewPrivacyHandler()
	wsChatHandler := handlers.NewWSChatHandler(generator, classifier, tracker, cfg.AllowedOrigins)

	r := gin.Default()
	r.Use(middleware.Logger())
	r.Use(middleware.PrivacyHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "Moody API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	crisisGate := middleware.CrisisGate(classifier, tracker, cfg.SafetyFailClosed)
	generateLimit := limiter.Limit("generate", cfg.GenerateLimitPerMin)

	api := r.Group("/api")
	api.Use(limiter.Limit("api", cfg.RateLimitPerMin))
	api.Use(middleware.DetectSensitiveData())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", tokens.Middleware(), authHandler.Me)
		}

		api.POST("/chat/anonymous", generateLimit, crisisGate, chatHandler.AnonymousChat)

		authorized := api.Group("/")
		authorized.Use(tokens.Middleware())
		{
			authorized.POST("/vent", generateLimit, crisisGate, ventHandler.CreateVent)
			authorized.GET("/vent", ventHandler.ListVents)

			authorized.POST("/translator/indian-parent", generateLimit, crisisGate, translatorHandler.TranslateToIndianParent)

			moods := authorized.Group("/moods")
			{
				moods.POST("", moodHandler.CreateMood)
				moods.GET("", moodHandler.GetMoods)
				moods.DELETE("/:id", moodHandler.DeleteMood)
			}

			authorized.GET("/privacy/my-data", privacyHandler.GetUserData)
			authorized.DELETE("/privacy/my-data", privacyHandler.DeleteUserData)
			authorized.POST("/privacy/consent", privacyHandler.GiveConsent)
			authorized.DELETE("/privacy/consent", privacyHandler.WithdrawConsent)
		}

		api.GET("/privacy/policy", privacyHandler.GetPolicy)
		api.GET("/privacy/processing-info", privacyHandler.GetProcessingInfo)

		language := api.Group("/language")
		{
			language.POST("/detect", languageHandler.DetectLanguage)
			language.POST("/translate/hindi", languageHandler.TranslateToHindi)
			language.POST("/translate/english", languageHandler.TranslateToEnglish)
			language.GET("/prompts", languageHandler.GetBilingualPrompts)
		}

		analyticsGroup := api.Group("/analytics")
		{
			analyticsGroup.GET("/metrics", analyticsHandler.GetMetrics)
			analyticsGroup.GET("/safety", analyticsHandler.GetSafetyMetrics)
			analyticsGroup.GET("/cultural", analyticsHandler.GetCulturalMetrics)
			analyticsGroup.GET("/technical", analyticsHandler.GetTechnicalMetrics)
			analyticsGroup.POST("/track", analyticsHandler.TrackEvent)
		}
	}

	r.GET("/ws/chat", wsChatHandler.Serve)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	log.Printf("Moody server listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// translatorOrNil avoids storing a typed nil inside the interface when
// the client is not configured.
func translatorOrNil(t *gcp.TranslateClient) handlers.LanguageDetector {
	if t == nil {
		return nil
	}
	return t
}

func languageOrNil(t *gcp.TranslateClient) handlers.Translator {
	if t == nil {
		return nil
	}
	return t
}
