package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"blinds-orders/internal/allocator"
	"blinds-orders/internal/configs"
	httpdelivery "blinds-orders/internal/delivery/http"
	"blinds-orders/internal/delivery/kafka"
	"blinds-orders/internal/metrics"
	"blinds-orders/internal/repository"
	pebblerepo "blinds-orders/internal/repository/pebble"
	"blinds-orders/internal/repository/postgres"
	"blinds-orders/internal/service"
	"blinds-orders/internal/store"
)

// @title Blinds Orders API
// @version 1.0
// @description Sales and production consoles for made-to-measure blinds orders.

// @host localhost:8081
// @basePath /

func main() {
	issue := flag.String("issue-token", "", "print a console token for actor:role and exit")
	flag.Parse()

	cfg, err := configs.LoadConfig(".env")
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
	logrus.Print("config parsed")

	if *issue != "" {
		printToken(cfg.AuthSecret, *issue)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage, closeStorage := openStorage(cfg)
	defer closeStorage()

	reg := metrics.NewRegistry()
	storeOpts := []store.Option{store.WithMetrics(reg)}
	var feed *kafka.ChangeFeed
	if brokers := cfg.KafkaBrokersSlice(); len(brokers) > 0 && cfg.KafkaChangesTopic != "" {
		feed = kafka.NewChangeFeed(brokers, cfg.KafkaChangesTopic)
		storeOpts = append(storeOpts, store.WithNotifier(feed))
		logrus.WithField("topic", cfg.KafkaChangesTopic).Print("change feed enabled")
	}
	st := store.New(repository.NewRepository(storage), storeOpts...)

	alloc, closeAlloc := newAllocator(ctx, cfg, st)
	defer closeAlloc()

	svc := service.NewService(st, alloc, service.WithMetrics(reg))
	if err := svc.WarmUp(ctx); err != nil {
		logrus.Fatalf("warm cache: %s", err)
	}

	var wg sync.WaitGroup
	var consumer *kafka.Consumer
	if brokers := cfg.KafkaBrokersSlice(); len(brokers) > 0 {
		consumer = kafka.NewConsumer(kafka.Config{
			Brokers:     brokers,
			GroupID:     cfg.KafkaGroupID,
			Topic:       cfg.KafkaCommandTopic,
			DLQ:         cfg.KafkaDLQTopic,
			MaxRetries:  cfg.KafkaMaxRetries,
			BaseBackoff: cfg.KafkaBaseBackoff,
		}, svc, reg)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Subscribe(ctx); err != nil {
				logrus.Errorf("consumer stopped: %v", err)
				cancel()
			}
		}()
		logrus.WithField("topic", cfg.KafkaCommandTopic).Print("kafka subscription started")
	} else {
		logrus.Warn("KAFKA_BROKERS is empty, status commands and change feed disabled")
	}

	h := httpdelivery.NewHandler(svc,
		httpdelivery.WithAuthSecret(cfg.AuthSecret),
		httpdelivery.WithMetricsHandler(reg.Handler()),
	)
	if cfg.AuthSecret == "" {
		logrus.Warn("AUTH_SECRET is empty, actors are taken from the X-Actor header")
	}
	srv := new(httpdelivery.Server)

	go func() {
		handler := httpdelivery.WithCORS(h.InitRoutes(), cfg.CORSOriginsSlice())
		if err := srv.Run(cfg.HTTPAddr, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}

	// open streams end here, otherwise Shutdown waits for them
	st.Close()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}

	cancel()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logrus.Errorf("consumer close: %s", err)
		}
	}
	wg.Wait()

	if feed != nil {
		if err := feed.Close(); err != nil {
			logrus.Errorf("change feed close: %s", err)
		}
	}
	logrus.Print("service stopped")
}

func openStorage(cfg configs.Config) (repository.OrderStorage, func()) {
	switch cfg.StoreBackend {
	case configs.BackendPebble:
		repo, err := pebblerepo.Open(cfg.PebbleDir)
		if err != nil {
			logrus.Fatalf("pebble open: %s", err)
		}
		logrus.WithField("dir", cfg.PebbleDir).Print("opened pebble store")
		return repo, func() {
			if err := repo.Close(); err != nil {
				logrus.Errorf("pebble close: %v", err)
			}
		}
	default:
		db, err := postgres.ConnectDB(cfg.Postgres())
		if err != nil {
			logrus.Fatalf("postgres connect: %s", err)
		}
		if err := postgres.Migrate(db); err != nil {
			logrus.Fatalf("postgres migrate: %s", err)
		}
		logrus.Print("connected to postgres")
		return postgres.NewOrderPostgres(db), func() {
			if err := db.Close(); err != nil {
				logrus.Errorf("db close: %v", err)
			}
		}
	}
}

func newAllocator(ctx context.Context, cfg configs.Config, st *store.Store) (allocator.Allocator, func()) {
	scheme := allocator.NewScheme(cfg.OrderPrefix, cfg.OrderBaseline)
	if cfg.Allocator != configs.AllocatorRedis {
		return allocator.NewScanAllocator(scheme, st), func() {}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	a := allocator.NewCounterAllocator(scheme, rdb, cfg.RedisCounterKey, st)
	if err := a.Seed(ctx); err != nil {
		logrus.WithError(err).Warn("order counter not seeded yet, will retry on first allocation")
	}
	logrus.WithField("addr", cfg.RedisAddr).Print("redis order counter enabled")
	return a, func() {
		if err := rdb.Close(); err != nil {
			logrus.Errorf("redis close: %v", err)
		}
	}
}

func printToken(secret, spec string) {
	if secret == "" {
		logrus.Fatal("AUTH_SECRET is empty, nothing to sign with")
	}
	actor, role, ok := strings.Cut(spec, ":")
	if !ok || actor == "" {
		logrus.Fatal("expected actor:role")
	}
	if role != httpdelivery.RoleSales && role != httpdelivery.RoleProduction {
		logrus.Fatalf("role must be %s or %s", httpdelivery.RoleSales, httpdelivery.RoleProduction)
	}
	token, err := httpdelivery.IssueToken(secret, actor, role, 30*24*time.Hour)
	if err != nil {
		logrus.Fatalf("sign token: %s", err)
	}
	fmt.Println(token)
}
