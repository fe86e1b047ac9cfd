package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"chickey-pos/internal/cache"
	"chickey-pos/internal/cart"
	"chickey-pos/internal/catalog"
	"chickey-pos/internal/config"
	"chickey-pos/internal/connections/database"
	"chickey-pos/internal/connections/rabbitmq"
	redisconn "chickey-pos/internal/connections/redis"
	"chickey-pos/internal/handlers"
	"chickey-pos/internal/inventory"
	"chickey-pos/internal/logger"
	"chickey-pos/internal/notify"
	"chickey-pos/internal/order"
	"chickey-pos/internal/repository"
	"chickey-pos/internal/server"
	"chickey-pos/internal/warnings"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	port := flag.Int("port", 0, "http port (overrides config)")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Postgres is the source of truth; without it there is nothing to serve.
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Error("database_connect_failed", err, nil)
		os.Exit(1)
	}
	defer db.Close()
	if err := repository.Migrate(db); err != nil {
		lg.Error("migrate_failed", err, nil)
		os.Exit(1)
	}

	// Redis and RabbitMQ are conveniences: the POS keeps serving without
	// them, with an in-process cache and no event stream.
	var cacheStore cache.Store
	if rc, err := redisconn.Connect(ctx, cfg.Redis); err != nil {
		lg.Error("redis_unavailable", err, map[string]any{"fallback": "memory"})
		cacheStore = cache.NewMemory()
	} else {
		defer rc.Close()
		cacheStore = cache.NewRedis(rc)
	}

	var events *notify.Publisher
	if mq, err := rabbitmq.Dial(cfg.RabbitMQ); err != nil {
		lg.Error("rabbitmq_unavailable", err, map[string]any{"events": "disabled"})
	} else {
		defer mq.Close()
		if events, err = notify.New(mq, logger.New("notify")); err != nil {
			lg.Error("exchange_declare_failed", err, map[string]any{"events": "disabled"})
			events = nil
		}
	}

	menuRepo := repository.NewMenuPG(db)
	invRepo := repository.NewInventoryPG(db)
	orderRepo := repository.NewOrdersPG(db)

	cat := catalog.NewStore(menuRepo, invRepo, cacheStore, logger.New("catalog"))
	if err := cat.Load(ctx); err != nil {
		lg.Error("catalog_load_degraded", err, map[string]any{"source": cat.Source()})
	}

	sink := warnings.NewSink()
	posCart := cart.New()
	proc := order.NewProcessor(posCart, cat, orderRepo, invRepo, cacheStore, sink, events, logger.New("order"))
	if err := proc.LoadHistory(ctx); err != nil {
		lg.Error("history_load_degraded", err, nil)
	}
	mut := inventory.NewMutator(cat, invRepo, sink, logger.New("inventory"))

	h := handlers.New(cat, posCart, proc, mut, sink, logger.New("http"))
	srv := server.New(":"+strconv.Itoa(cfg.Server.Port), h.Router(), logger.New("http"))

	lg.Info("service_started", map[string]any{"service": "pos-server", "port": cfg.Server.Port})
	err = srv.Run(ctx)

	// Drain in-flight remote writes before exiting.
	proc.Wait()
	mut.Wait()

	if err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
}
