package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/bcoin"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/service/scanner"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	ClickhouseDSN     string            `long:"clickhouse-dsn" env:"BCOIN_SCANNER_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Coin              model.Coin        `long:"coin" env:"BCOIN_SCANNER_COIN" description:"coin name" default:"BTC"`
	Network           model.Network     `long:"network" env:"BCOIN_SCANNER_NETWORK" description:"network name" default:"mainnet"`
	NodeURL           string            `long:"node-url" env:"BCOIN_SCANNER_NODE_URL" description:"bcoin node REST URL" default:"http://127.0.0.1:8332"`
	APIKey            string            `long:"api-key" env:"BCOIN_SCANNER_API_KEY" description:"bcoin node API key"`
	HTTPTimeout       time.Duration     `long:"http-timeout" env:"BCOIN_SCANNER_HTTP_TIMEOUT" description:"HTTP timeout for node requests" default:"30s"`
	PageSize          int               `long:"page-size" env:"BCOIN_SCANNER_PAGE_SIZE" description:"transactions per history page" default:"20"`
	MaxTransactions   int               `long:"max-txs" env:"BCOIN_SCANNER_MAX_TXS" description:"history cap per address" default:"1000"`
	RetryAttempts     int               `long:"retry-attempts" env:"BCOIN_SCANNER_RETRY_ATTEMPTS" description:"attempts per timed-out request" default:"3"`
	RetryPause        time.Duration     `long:"retry-pause" env:"BCOIN_SCANNER_RETRY_PAUSE" description:"pause between timed-out attempts" default:"3s"`
	RequestsPerSecond int               `long:"rps" env:"BCOIN_SCANNER_RPS" description:"node request rate limit, 0 disables" default:"0"`
	SpendSource       chain.SpendSource `long:"spend-source" env:"BCOIN_SCANNER_SPEND_SOURCE" description:"spend resolution strategy" choice:"batch" choice:"node" default:"batch"`
	Addresses         []string          `long:"address" env:"BCOIN_SCANNER_ADDRESSES" env-delim:"," description:"address to scan (repeatable)" required:"true"`
	ScanInterval      time.Duration     `long:"scan-interval" env:"BCOIN_SCANNER_SCAN_INTERVAL" description:"pause between scans" default:"1m"`
	FlushSize         int               `long:"flush-size" env:"BCOIN_SCANNER_FLUSH_SIZE" description:"snapshots per ClickHouse write" default:"100"`
	FlushInterval     time.Duration     `long:"flush-interval" env:"BCOIN_SCANNER_FLUSH_INTERVAL" description:"maximum delay before queued snapshots are written" default:"5s"`
	FlushesPerSecond  int               `long:"flushes-per-second" env:"BCOIN_SCANNER_FLUSHES_PER_SECOND" description:"ClickHouse write rate limit, 0 disables" default:"0"`
	MetricsAddr       string            `long:"metrics-addr" env:"BCOIN_SCANNER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("utxo scanner failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Warn("close repository", zap.Error(closeErr))
		}
	}()
	if err := repo.Ping(ctx); err != nil {
		return fmt.Errorf("ping clickhouse: %w", err)
	}

	client, err := bcoin.NewNodeClient(bcoin.Config{
		BaseURL:           cfg.NodeURL,
		APIKey:            cfg.APIKey,
		Network:           cfg.Network,
		Timeout:           cfg.HTTPTimeout,
		PageSize:          cfg.PageSize,
		MaxTransactions:   cfg.MaxTransactions,
		RetryAttempts:     cfg.RetryAttempts,
		RetryPause:        cfg.RetryPause,
		RequestsPerSecond: cfg.RequestsPerSecond,
		SpendSource:       cfg.SpendSource,
	}, metrics.NewNodeClient(cfg.Coin, cfg.Network), logger)
	if err != nil {
		return fmt.Errorf("init bcoin client: %w", err)
	}

	svc, err := scanner.NewService(
		client,
		repo,
		metrics.NewUTXOScanner(cfg.Coin, cfg.Network),
		cfg.Coin,
		cfg.Network,
		scanner.Config{
			Addresses:        cfg.Addresses,
			Interval:         cfg.ScanInterval,
			MaxTransactions:  cfg.MaxTransactions,
			FlushSize:        cfg.FlushSize,
			FlushInterval:    cfg.FlushInterval,
			FlushesPerSecond: cfg.FlushesPerSecond,
		},
		logger.Named("scanner"),
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
