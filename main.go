package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"seenafile_server/config"
	"seenafile_server/routes"
	"seenafile_server/services"
	"seenafile_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Optional Redis fallback cache (nil when disabled or unreachable)
	cacheService := services.NewCacheService(cfg.Redis)

	// Initialize Services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	interactionService := &services.InteractionService{Dynamo: dynamoService, Cache: cacheService}
	chatService := &services.ChatService{Dynamo: dynamoService}
	matchService := &services.MatchService{
		Dynamo:       dynamoService,
		Interactions: interactionService,
		Chat:         chatService,
		Threshold:    cfg.MatchThreshold,
		Workers:      cfg.MatchWorkers,
	}
	s3Service := services.NewS3Service(cfg.AWSRegion, cfg.S3Bucket)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to SeenaFile")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Register routes
	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterInteractionRoutes(r, interactionService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterS3Routes(r, s3Service)

	// Mount the realtime chat relay
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket server stopped: %v", err)
		}
	}()
	defer socketServer.Close()
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
