package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"fixmyward-be/config"
	"fixmyward-be/controllers"
	"fixmyward-be/routes"
	"fixmyward-be/services"
	"fixmyward-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var st store.Store
	if os.Getenv("MONGODB_URI") != "" {
		db := config.ConnectDB()
		if db == nil {
			log.Fatal("Failed to connect to MongoDB")
		}
		mongoStore := store.NewMongoStore(db)
		if err := mongoStore.EnsureIndexes(context.Background()); err != nil {
			log.Println("Failed to ensure indexes:", err)
		}
		st = mongoStore
	} else {
		log.Println("MONGODB_URI not set, using in-memory store")
		st = store.NewMemoryStore()
	}

	if os.Getenv("REDIS_ADDRESS") != "" {
		config.ConnectRedis()
	} else {
		log.Println("REDIS_ADDRESS not set, report rate limiting disabled")
	}

	advisory := services.NewGeminiClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	authService := services.NewAuthService(st)
	issueService := services.NewIssueService(st, advisory)
	controllers.Init(authService, issueService)

	// Session is read once at launch; a persisted user stays signed in
	// across restarts.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if user, err := authService.CurrentSession(ctx); err != nil {
		log.Println("Failed to restore session:", err)
	} else if user != nil {
		log.Printf("Restored session for %s", user.Email)
	}
	cancel()

	r := gin.Default()

	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.WardRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
