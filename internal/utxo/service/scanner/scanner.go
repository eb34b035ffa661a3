package scanner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/pkg/batcher"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/pkg/safe"
	"go.uber.org/zap"
)

// Config controls what is scanned and how often.
type Config struct {
	Addresses        []string
	Interval         time.Duration
	MaxTransactions  int
	FlushSize        int
	FlushInterval    time.Duration
	FlushesPerSecond int
}

// Service scans every configured address once per interval and queues
// the results for batched insertion.
type Service struct {
	logger    *zap.Logger
	coin      model.Coin
	network   model.Network
	source    UTXOSource
	batcher   SnapshotBatcher
	metrics   Metrics
	clock     clock.Clock
	addresses []string
	interval  time.Duration
	maxTxs    int
}

// NewService builds a Service that writes snapshots through writer.
func NewService(
	source UTXOSource,
	writer SnapshotWriter,
	metrics Metrics,
	coin model.Coin,
	network model.Network,
	cfg Config,
	logger *zap.Logger,
) (*Service, error) {
	if source == nil {
		return nil, errors.New("scanner utxo source is required")
	}
	if writer == nil {
		return nil, errors.New("scanner snapshot writer is required")
	}
	if metrics == nil {
		return nil, errors.New("scanner metrics is required")
	}

	addresses := slices.Compact(slices.Sorted(slices.Values(cfg.Addresses)))
	addresses = slices.DeleteFunc(addresses, func(a string) bool { return a == "" })
	if len(addresses) == 0 {
		return nil, errors.New("scanner needs at least one address")
	}

	if cfg.FlushesPerSecond < 0 {
		return nil, fmt.Errorf("negative flushes per second: %d", cfg.FlushesPerSecond)
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	flushSize := cfg.FlushSize
	if flushSize <= 0 {
		flushSize = defaultFlushSize
	}
	flushInterval := cfg.FlushInterval
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}

	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)
	w := snapshotWriter{writer: writer}
	queue := batcher.New(logger.Named("snapshotWriter"), w.flush, batcher.Config{
		FlushSize:        flushSize,
		FlushInterval:    flushInterval,
		FlushesPerSecond: cfg.FlushesPerSecond,
	}, batcher.WithFlushObserver(metrics.ObserveFlush))

	return &Service{
		logger:    logger,
		coin:      coin,
		network:   network,
		source:    source,
		batcher:   queue,
		metrics:   metrics,
		clock:     clock.Real{},
		addresses: addresses,
		interval:  interval,
		maxTxs:    cfg.MaxTransactions,
	}, nil
}

// Run scans until the context is canceled. Queued snapshots are flushed on exit.
func (s *Service) Run(ctx context.Context) error {
	s.batcher.Start(context.WithoutCancel(ctx))
	defer s.batcher.Stop()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.scan(ctx); err != nil {
			s.logger.Warn("scan incomplete", zap.Error(err))
		}
		if err := s.clock.Sleep(ctx, s.interval); err != nil {
			return err
		}
	}
}

func (s *Service) scan(ctx context.Context) error {
	started := s.clock.Now()
	capturedAt := started.Truncate(time.Millisecond)

	var (
		errs  []error
		utxos int
		value uint64
	)
	for _, address := range s.addresses {
		snapshot, err := s.scanAddress(ctx, address, capturedAt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		utxos += int(snapshot.Scan.UTXOs)
		value += snapshot.Scan.Value
	}

	err := errors.Join(errs...)
	s.metrics.ObserveScan(err, utxos, value, started)
	if err == nil {
		s.logger.Info("scan completed",
			zap.Int("addresses", len(s.addresses)),
			zap.Int("utxos", utxos),
			zap.Stringer("value", btcutil.Amount(value)),
		)
	}
	return err
}

func (s *Service) scanAddress(ctx context.Context, address string, capturedAt time.Time) (model.AddressSnapshot, error) {
	utxos, err := s.source.UTXOs(ctx, []string{address}, "", s.maxTxs)
	if err != nil {
		return model.AddressSnapshot{}, fmt.Errorf("fetch utxos of %s: %w", address, err)
	}

	count, err := safe.Uint32(len(utxos))
	if err != nil {
		return model.AddressSnapshot{}, fmt.Errorf("count utxos of %s: %w", address, err)
	}

	var value uint64
	for i := range utxos {
		utxos[i].Coin = s.coin
		utxos[i].Network = s.network
		utxos[i].CapturedAt = capturedAt
		value += utxos[i].Value
	}

	snapshot := model.AddressSnapshot{
		Scan: model.AddressScan{
			Coin:       s.coin,
			Network:    s.network,
			Address:    address,
			CapturedAt: capturedAt,
			UTXOs:      count,
			Value:      value,
		},
		UTXOs: utxos,
	}
	if err := s.batcher.Add(ctx, snapshot); err != nil {
		return model.AddressSnapshot{}, fmt.Errorf("queue snapshot of %s: %w", address, err)
	}

	s.logger.Debug("address scanned",
		zap.String("address", address),
		zap.Int("utxos", len(utxos)),
		zap.Stringer("value", btcutil.Amount(value)),
	)
	return snapshot, nil
}
