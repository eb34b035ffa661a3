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
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/bcoin"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/repository/clickhouse"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var config struct {
	RestAddr          string            `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"rest addr" default:":8001"`
	Coin              model.Coin        `long:"coin" env:"API_GATEWAY_COIN" description:"coin name" default:"BTC"`
	Network           model.Network     `long:"network" env:"API_GATEWAY_NETWORK" description:"network name" default:"mainnet"`
	NodeURL           string            `long:"node-url" env:"API_GATEWAY_NODE_URL" description:"bcoin node REST URL" default:"http://127.0.0.1:8332"`
	APIKey            string            `long:"api-key" env:"API_GATEWAY_API_KEY" description:"bcoin node API key"`
	HTTPTimeout       time.Duration     `long:"http-timeout" env:"API_GATEWAY_HTTP_TIMEOUT" description:"HTTP timeout for node requests" default:"30s"`
	PageSize          int               `long:"page-size" env:"API_GATEWAY_PAGE_SIZE" description:"transactions per history page" default:"20"`
	MaxTransactions   int               `long:"max-txs" env:"API_GATEWAY_MAX_TXS" description:"default history cap per address" default:"20"`
	RetryAttempts     int               `long:"retry-attempts" env:"API_GATEWAY_RETRY_ATTEMPTS" description:"attempts per timed-out request" default:"3"`
	RetryPause        time.Duration     `long:"retry-pause" env:"API_GATEWAY_RETRY_PAUSE" description:"pause between timed-out attempts" default:"3s"`
	RequestsPerSecond int               `long:"rps" env:"API_GATEWAY_RPS" description:"node request rate limit, 0 disables" default:"0"`
	SpendSource       chain.SpendSource `long:"spend-source" env:"API_GATEWAY_SPEND_SOURCE" description:"spend resolution strategy" choice:"batch" choice:"node" default:"batch"`
	ClickhouseDSN     string            `long:"clickhouse-dsn" env:"API_GATEWAY_CLICKHOUSE_DSN" description:"ClickHouse DSN, enables the snapshot route"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	if err := run(ctx, logger); err != nil {
		logger.Fatal("api gateway failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	client, err := bcoin.NewNodeClient(bcoin.Config{
		BaseURL:           config.NodeURL,
		APIKey:            config.APIKey,
		Network:           config.Network,
		Timeout:           config.HTTPTimeout,
		PageSize:          config.PageSize,
		MaxTransactions:   config.MaxTransactions,
		RetryAttempts:     config.RetryAttempts,
		RetryPause:        config.RetryPause,
		RequestsPerSecond: config.RequestsPerSecond,
		SpendSource:       config.SpendSource,
	}, metrics.NewNodeClient(config.Coin, config.Network), logger)
	if err != nil {
		return fmt.Errorf("init bcoin client: %w", err)
	}

	var snapshots transport.SnapshotReader
	if config.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if closeErr := repo.Close(); closeErr != nil {
				logger.Warn("close repository", zap.Error(closeErr))
			}
		}()
		snapshots = repo
	}

	mux := http.NewServeMux()
	mux.Handle("/v1/", transport.NewHandler(client, snapshots, config.Coin, config.Network, config.MaxTransactions, logger.Named("transport")))
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.RestAddr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
