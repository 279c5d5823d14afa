package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/refer"
	"github.com/hupe1980/refer/blobstore"
	"github.com/hupe1980/refer/blobstore/minio"
	"github.com/hupe1980/refer/blobstore/s3"
	"github.com/hupe1980/refer/codec"
	"github.com/hupe1980/refer/internal/cache"
	"github.com/hupe1980/refer/internal/resource"
	promcollector "github.com/hupe1980/refer/metrics/prometheus"
)

// app carries the state built from Config before a command runs.
type app struct {
	cfg     *Config
	logger  *refer.Logger
	metrics refer.MetricsCollector
	rc      *resource.Controller

	// openStore is replaced in tests.
	openStore func(ctx context.Context) (blobstore.BlobStore, error)
	server    *http.Server
}

func newApp(cfg *Config, stderr io.Writer) (*app, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	a := &app{
		cfg:     cfg,
		metrics: refer.NoopMetricsCollector{},
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   cfg.MemoryLimit,
			MaxConcurrentReads: cfg.MaxReads,
			ReadBytesPerSec:    cfg.RateLimit,
		}),
	}
	if cfg.LogFormat == "json" {
		a.logger = refer.NewLogger(slog.NewJSONHandler(stderr, opts))
	} else {
		a.logger = refer.NewLogger(slog.NewTextHandler(stderr, opts))
	}
	a.openStore = a.buildStore
	return a, nil
}

// startMetrics serves /metrics on cfg.MetricsAddr when set.
func (a *app) startMetrics() error {
	if a.cfg.MetricsAddr == "" {
		return nil
	}

	reg := prometheus.NewRegistry()
	c, err := promcollector.NewCollector(reg)
	if err != nil {
		return err
	}
	a.metrics = c

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.server = &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.logger.Info("serving metrics", "addr", a.cfg.MetricsAddr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
	return nil
}

func (a *app) close() {
	if a.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = a.server.Shutdown(ctx)
}

func (a *app) buildStore(ctx context.Context) (blobstore.BlobStore, error) {
	var store blobstore.BlobStore
	switch a.cfg.Store {
	case "local":
		return blobstore.NewLocalStore(a.cfg.DataRoot), nil
	case "s3":
		var opts []s3.Option
		if a.cfg.Prefix != "" {
			opts = append(opts, s3.WithPrefix(a.cfg.Prefix))
		}
		if a.cfg.Region != "" {
			opts = append(opts, s3.WithRegion(a.cfg.Region))
		}
		if a.cfg.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(a.cfg.Endpoint))
		}
		s, err := s3.New(ctx, a.cfg.Bucket, opts...)
		if err != nil {
			return nil, fmt.Errorf("s3 store: %w", err)
		}
		store = s
	case "minio":
		s, err := minio.Dial(a.cfg.Endpoint, a.cfg.AccessKey, a.cfg.SecretKey, a.cfg.Bucket, a.cfg.Prefix, !a.cfg.Insecure)
		if err != nil {
			return nil, fmt.Errorf("minio store: %w", err)
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown store %q", a.cfg.Store)
	}
	return a.wrapRemote(store), nil
}

// wrapRemote throttles reads and puts a block cache in front of them.
func (a *app) wrapRemote(store blobstore.BlobStore) blobstore.BlobStore {
	if a.cfg.RateLimit > 0 || a.cfg.MaxReads > 0 {
		store = blobstore.NewRateLimitedStore(store, a.rc)
	}
	if a.cfg.CacheBytes > 0 {
		c := cache.NewLRUBlockCache(a.cfg.CacheBytes, a.rc)
		store = blobstore.NewCachingStore(store, c, blobstore.DefaultBlockSize)
	}
	return store
}

func (a *app) open(ctx context.Context) (*refer.Refer, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(a.cfg.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (known: %v)", a.cfg.Codec, codec.Names())
	}

	b := refer.Dataset(a.cfg.Dataset).
		SplitBy(a.cfg.SplitBy).
		Store(store).
		Codec(c).
		Logger(a.logger).
		Metrics(a.metrics)
	if a.cfg.Store != "local" {
		b = b.DataRoot(a.cfg.DataRoot)
	}
	return b.Build(ctx)
}
