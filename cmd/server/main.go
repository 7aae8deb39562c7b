package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pixelfault/meltdown/internal/config"
	"github.com/pixelfault/meltdown/internal/game"
	"github.com/pixelfault/meltdown/internal/handlers"
	"github.com/pixelfault/meltdown/internal/sandbox"
	"github.com/pixelfault/meltdown/internal/store"
	"github.com/pixelfault/meltdown/internal/ws"
)

func main() {
	// .env is optional; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	lobbies := store.NewLobbyStore()
	runner := sandbox.NewRunner(cfg.SandboxTimeout)
	svc := game.NewService(lobbies, runner)
	hub := ws.NewHub(svc, cfg.Debug)
	api := handlers.New(svc, cfg.PublicURL)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Mount("/api", api.Routes())
	router.Get("/ws", hub.ServeWS)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// Global game loop: one tick per second for the lifetime of the
	// process. A fault in one cycle is logged and must not stop the loop.
	tickCtx, stopTick := context.WithCancel(context.Background())
	defer stopTick()
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				return
			case <-ticker.C:
				runTick(svc, hub)
			}
		}
	}()

	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exited")
}

func runTick(svc *game.Service, hub *ws.Hub) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("tick panic recovered: %v", p)
		}
	}()
	for _, u := range svc.Tick() {
		hub.Broadcast(u.Lobby.Code, ws.EventLobbyUpdated, u.Lobby)
		if u.Ended {
			hub.CancelMeltdown(u.Lobby.Code)
			hub.Broadcast(u.Lobby.Code, ws.EventGameEnded, u.Lobby)
		}
	}
}
