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

	"brewhouse/analytics"
	"brewhouse/auth"
	"brewhouse/cart"
	"brewhouse/checkout"
	"brewhouse/inventory"
	"brewhouse/kv"
	"brewhouse/lifecycle"
	"brewhouse/loyalty"
	"brewhouse/menu"
	"brewhouse/mq"
	"brewhouse/ratelim"
	"brewhouse/ratings"
	"brewhouse/receipts"
	"brewhouse/routes"
	"brewhouse/tracker"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

// openStore picks the gateway backend from KV_BACKEND. Redis also powers
// the status event channel when selected.
func openStore(bus *mq.Bus) kv.Store {
	switch os.Getenv("KV_BACKEND") {
	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		store, err := kv.NewRedis(addr, os.Getenv("REDIS_PASSWORD"))
		if err != nil {
			log.Fatalf("failed to connect to Redis at %s: %v", addr, err)
		}
		bus.WithRedis(store.Conn())
		return store
	case "mongo":
		uri := os.Getenv("MONGO_URI")
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := kv.NewMongo(ctx, uri, "brewhouse")
		if err != nil {
			log.Fatalf("failed to connect to MongoDB at %s: %v", uri, err)
		}
		return store
	default:
		log.Println("KV_BACKEND not set; using in-memory store")
		return kv.NewMemory()
	}
}

func setupRouter(store kv.Store, carts *cart.Store, sched *lifecycle.Scheduler, bus *mq.Bus, hub *tracker.Hub, rl *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Health)

	routes.AddAuthRoutes(router, auth.NewHandler(store), rl)
	routes.AddMenuRoutes(router, menu.NewHandler(store))
	routes.AddCartRoutes(router, cart.NewHandler(store, carts))
	routes.AddLoyaltyRoutes(router, loyalty.NewHandler(store))
	routes.AddOrderRoutes(router, checkout.NewHandler(store, carts, sched), lifecycle.NewHandler(store, bus), receipts.NewHandler(store))
	routes.AddRatingsRoutes(router, ratings.NewHandler(store))
	routes.AddInventoryRoutes(router, inventory.NewHandler(store))
	routes.AddAnalyticsRoutes(router, analytics.NewHandler(store))
	routes.AddTrackerRoutes(router, hub)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	bus := mq.NewBus()
	store := openStore(bus)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := menu.Seed(ctx, store); err != nil {
		log.Printf("menu seed failed: %v", err)
	}
	if err := inventory.Seed(ctx, store); err != nil {
		log.Printf("inventory seed failed: %v", err)
	}
	cancel()

	carts := cart.NewStore()
	sched := lifecycle.NewScheduler(store, bus, lifecycle.DefaultReadyDelay)
	hub := tracker.NewHub(bus)
	go hub.Run()

	rl := ratelim.NewRateLimiter()
	router := setupRouter(store, carts, sched, bus, hub, rl)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		sched.Stop()
		hub.Stop()
	})

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly")
}
