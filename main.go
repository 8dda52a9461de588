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

	"wayfarer/config"
	"wayfarer/db"
	"wayfarer/globals"
	"wayfarer/hotels"
	"wayfarer/mq"
	"wayfarer/pdfexport"
	"wayfarer/planner"
	"wayfarer/rdx"
	"wayfarer/routes"
	"wayfarer/shares"
	"wayfarer/trips"
	"wayfarer/weather"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(cfg *config.Config, p *planner.Planner, hotelClient *hotels.Client, weatherClient *weather.Client) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	shareHandlers := shares.NewHandlers(cfg.BaseURL)
	exportHandler := pdfexport.NewHandler(cfg.BaseURL)

	routes.AddAuthRoutes(router)
	routes.AddPlannerRoutes(router, p)
	routes.AddTripRoutes(router)
	routes.AddShareRoutes(router, shareHandlers)
	routes.AddExportRoutes(router, exportHandler)
	routes.AddBookingRoutes(router)
	routes.AddHotelRoutes(router, hotelClient)
	routes.AddWeatherRoutes(router, weatherClient)
	routes.AddActivityRoutes(router)

	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	globals.JwtSecret = []byte(cfg.JWTSecret)

	if err := db.Init(cfg.MongoURI); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	if err := rdx.Init(cfg.RedisURI); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}

	geminiClient, err := planner.NewGeminiClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create Gemini client: %v", err)
	}
	hotelClient := hotels.NewClient(cfg.RapidAPIKey, cfg.DefaultHotelPrice)
	weatherClient := weather.NewClient(cfg.OpenWeatherAPIKey)
	tripPlanner := planner.New(geminiClient, trips.NewStore(), hotelClient)

	// background workers
	go rdx.FlushShareViews()
	go mq.StartEventWorker()

	router := setupRouter(cfg, tripPlanner, hotelClient, weatherClient)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      120 * time.Second, // generation can take a while
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.Printf("MongoDB disconnect error: %v", err)
		}
	})

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
