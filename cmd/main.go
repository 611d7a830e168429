package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"contact-dashboard/config"
	"contact-dashboard/internal/handlers"
	"contact-dashboard/internal/middleware"
	"contact-dashboard/internal/repositories"
	"contact-dashboard/internal/services"
)

// @title Contact Dashboard API
// @version 1.0
// @description Backend do dashboard de contatos com toggle de bot por contato e acesso protegido por sessão
// @host localhost:8081
// @BasePath /api/v1
func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load config
	cfg := config.NewConfig()

	// Initialize database connection
	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	// Initialize Redis (session store)
	redisClient, err := config.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	contactRepository := repositories.NewMySQLContactRepository(db)
	userRepository := repositories.NewMySQLUserRepository(db)
	sessionService := services.NewSessionService(redisClient, userRepository)

	s3Service, err := services.NewS3Service(cfg.S3Config)
	if err != nil {
		log.Printf("Warning: S3 service unavailable, avatar upload disabled: %v", err)
		s3Service = nil
	}

	guard := middleware.NewRouteGuard(sessionService, cfg.CookieName)
	authHandler := handlers.NewAuthHandler(sessionService, userRepository, cfg.CookieName)
	contactHandler := handlers.NewContactHandler(contactRepository, s3Service)
	pageHandler := handlers.NewPageHandler("./web")

	router := mux.NewRouter().PathPrefix("/api/v1").Subrouter()

	// Rotas de autenticação
	router.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	router.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	router.HandleFunc("/auth/session", authHandler.GetSession).Methods("GET", "OPTIONS")

	// Rotas de contatos, exigem sessão ativa
	contactRoutes := router.PathPrefix("/contacts").Subrouter()
	contactRoutes.Use(guard.RequireSession)
	contactRoutes.HandleFunc("", contactHandler.ListContacts).Methods("GET", "OPTIONS")
	contactRoutes.HandleFunc("/{id}", contactHandler.DeleteContact).Methods("DELETE", "OPTIONS")
	contactRoutes.HandleFunc("/{id}/bot", contactHandler.ToggleBot).Methods("PUT", "OPTIONS")
	contactRoutes.HandleFunc("/{id}/avatar", contactHandler.UploadAvatar).Methods("POST", "OPTIONS")
	contactRoutes.HandleFunc("/{id}/qrcode", contactHandler.GetQRCode).Methods("GET", "OPTIONS")

	// Rota WebSocket
	router.HandleFunc("/ws", handlers.WebSocketHandler)

	// Serve os arquivos estáticos do Swagger
	fs := http.FileServer(http.Dir("./docs"))
	router.PathPrefix("/swagger/").Handler(http.StripPrefix("/api/v1/swagger/", fs))

	// Configuração do Swagger UI
	router.PathPrefix("/swagger-ui/").Handler(httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8081/api/v1/swagger/swagger.json"),
		httpSwagger.DeepLinking(true),
	))

	mainRouter := mux.NewRouter()
	mainRouter.PathPrefix("/api/v1").Handler(router)

	// Páginas passam pelo route guard antes de renderizar
	pages := mainRouter.PathPrefix("/").Subrouter()
	pages.Use(guard.Handler)
	pages.HandleFunc("/login", pageHandler.LoginPage).Methods("GET")
	pages.PathPrefix("/dashboard").HandlerFunc(pageHandler.DashboardPage).Methods("GET")
	pages.HandleFunc("/", pageHandler.LoginPage).Methods("GET")

	// Configurar CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	handler := c.Handler(mainRouter)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	// Canal para sinais de interrupção
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Printf("Server is running on http://localhost%s\n", cfg.ListenAddr)
		fmt.Printf("Swagger UI available at: http://localhost%s/api/v1/swagger-ui/\n", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-stop
	fmt.Println("\nShutting down gracefully...")

	// Criar contexto com timeout para shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Fechar servidor HTTP
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	fmt.Println("Server stopped successfully")
}
