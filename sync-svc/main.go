package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"overcooked-menusync/config"
	httpapi "overcooked-menusync/sync-svc/internal/api/http"
	"overcooked-menusync/sync-svc/internal/api/ws"
	"overcooked-menusync/sync-svc/internal/domain"
	"overcooked-menusync/sync-svc/internal/metrics"
	"overcooked-menusync/sync-svc/internal/service"
	"overcooked-menusync/sync-svc/internal/storage"
)

type stores struct {
	menus     service.MenuRepository
	pos       service.POSRepository
	inventory service.InventoryRepository
	feed      service.InventoryFeed
}

func main() {
	settings := config.LoadSettings()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStores := openStores(ctx, settings)
	defer closeStores()

	collector := metrics.NewCollector()
	hub := ws.NewHub()
	defer hub.Close()

	emitter := service.NewMultiEmitter(hub)
	if settings.KafkaBroker != "" {
		writer := settings.NewKafkaWriter(settings.CostsTopic)
		defer writer.Close()
		emitter.Add(storage.NewKafkaPublisher(writer))
	}
	if settings.RedisHost != "" {
		rdb := settings.MustInitRedis()
		defer rdb.Close()
		emitter.Add(storage.NewRedisCache(rdb, settings.RedisTTL))
	}

	validator := service.NewValidator(st.menus, st.pos)
	reconciler := service.NewReconciler(st.menus, st.pos, validator, collector)

	engineConfig := service.DefaultEngineConfig
	engineConfig.QueueSize = settings.EngineQueueSize
	registry := service.NewRegistry(service.EngineDeps{
		Menus:     st.menus,
		Inventory: st.inventory,
		Feed:      st.feed,
		Emitter:   emitter,
		Projector: reconciler,
		Metrics:   collector,
		Config:    engineConfig,
	})
	reconciler.SetObserver(registry)
	defer registry.Shutdown()

	scopes, err := settings.LoadScopes()
	if err != nil {
		log.Fatal("Failed to load scopes:", err)
	}
	for _, ref := range scopes {
		scope := domain.Scope{TenantID: ref.TenantID, LocationID: ref.LocationID}
		if _, err := service.HealthCheck(ctx, scope, validator, reconciler, settings.AutoRepair); err != nil {
			log.Printf("Health check %s failed: %v", scope, err)
		}
		if err := registry.Start(ctx, scope); err != nil {
			log.Printf("Failed to start engine %s: %v", scope, err)
		}
	}

	handler := httpapi.NewHandler(reconciler, validator, registry)
	handler.Metrics = collector.Handler()
	handler.Costs = hub

	server := httpapi.NewServer(settings.Addr, httpapi.NewRouter(handler))
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down Sync Service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
}

func openStores(ctx context.Context, settings config.Settings) (stores, func()) {
	if settings.StoreDriver == "memory" {
		log.Println("Using in-memory document store")
		mem := storage.NewMemoryStore()
		return stores{menus: mem, pos: mem, inventory: mem, feed: mem}, func() {}
	}

	db := config.MustInitPostgres()
	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	var reader storage.MessageReader
	if settings.KafkaBroker != "" {
		reader = settings.NewKafkaReader(settings.InventoryTopic, "sync-svc")
	} else {
		log.Println("KAFKA_BROKER not set, inventory feed relies on polling")
	}
	feed := storage.NewInventoryFeedHub(reader, repo, settings.FeedPollInterval)
	feedCtx, cancel := context.WithCancel(ctx)
	go feed.Run(feedCtx)

	return stores{menus: repo, pos: repo, inventory: repo, feed: feed}, func() {
		cancel()
		if err := feed.Close(); err != nil {
			log.Printf("Error closing inventory reader: %v", err)
		}
		db.Close()
	}
}
