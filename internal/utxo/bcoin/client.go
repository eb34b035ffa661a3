package bcoin

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	minFeeBlocks = 1
	maxFeeBlocks = 15

	// DefaultWorkers bounds concurrent per-address pipelines.
	DefaultWorkers = 4
	// DefaultTimeout is the HTTP timeout of a single node request.
	DefaultTimeout = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	BaseURL           string
	APIKey            string
	Network           model.Network
	Timeout           time.Duration
	PageSize          int
	MaxTransactions   int
	RetryAttempts     int
	RetryPause        time.Duration
	RequestsPerSecond int
	SpendSource       chain.SpendSource
	Workers           int
}

// BroadcastResult is the outcome of SendRawTransaction. TxID is empty unless the node accepted the transaction.
type BroadcastResult struct {
	TxID     string
	Response map[string]any
}

// Client exposes a bcoin node through the normalized UTXO model.
type Client struct {
	requester  Requester
	normalizer *Normalizer
	fetcher    *Fetcher
	projector  *chain.UTXOProjector
	workers    int
	logger     *zap.Logger
}

// NewNodeClient builds a Client talking HTTP to the node at cfg.BaseURL, retrying timed out reads.
func NewNodeClient(cfg Config, metrics RPCMetrics, logger *zap.Logger) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.RetryPause <= 0 {
		cfg.RetryPause = DefaultRetryPause
	}

	raw, err := NewHTTPRequester(RequesterConfig{
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, metrics)
	if err != nil {
		return nil, err
	}
	requester := newRetryingRequester(raw, cfg.RetryAttempts, cfg.RetryPause, logger.Named("retry"))
	return NewClient(requester, cfg, logger)
}

// NewClient builds a Client on top of an existing requester.
func NewClient(requester Requester, cfg Config, logger *zap.Logger) (*Client, error) {
	logger = logger.Named("bcoin").With(zap.String("network", string(cfg.Network)))

	normalizer, err := NewNormalizer(cfg.Network, logger)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	c := &Client{
		requester:  requester,
		normalizer: normalizer,
		fetcher:    NewFetcher(requester, normalizer, cfg.PageSize, cfg.MaxTransactions, logger),
		workers:    workers,
		logger:     logger,
	}
	projector, err := chain.NewUTXOProjector(cfg.SpendSource, c)
	if err != nil {
		return nil, err
	}
	c.projector = projector
	return c, nil
}

// BlockCount returns the height of the node's chain tip.
func (c *Client) BlockCount(ctx context.Context) (uint64, error) {
	var info InfoRecord
	if err := c.requester.Get(ctx, "/", nil, &info); err != nil {
		return 0, fmt.Errorf("get node info: %w", err)
	}
	if info.Chain == nil {
		return 0, malformed("node info without chain")
	}
	if info.Chain.Height < 0 {
		return 0, malformed("negative chain height %d", info.Chain.Height)
	}
	return uint64(info.Chain.Height), nil
}

// EstimateFee returns the fee rate per kilobyte for confirmation within blocks (clamped to 1..15).
// ok is false when the node has no estimate.
func (c *Client) EstimateFee(ctx context.Context, blocks int) (rate btcutil.Amount, ok bool, err error) {
	blocks = min(max(blocks, minFeeBlocks), maxFeeBlocks)
	query := url.Values{}
	query.Set("blocks", strconv.Itoa(blocks))

	var fee FeeRecord
	if err := c.requester.Get(ctx, "/fee", query, &fee); err != nil {
		return 0, false, fmt.Errorf("estimate fee for %d blocks: %w", blocks, err)
	}
	if fee.Rate == nil || *fee.Rate <= 0 {
		c.logger.Debug("no fee estimate", zap.Int("blocks", blocks))
		return 0, false, nil
	}
	rate = btcutil.Amount(*fee.Rate)
	c.logger.Debug("fee estimate", zap.Int("blocks", blocks), zap.Stringer("per_kb", rate))
	return rate, true, nil
}

// Transaction returns one normalized transaction. Spend status stays unknown.
func (c *Client) Transaction(ctx context.Context, txID string) (model.Transaction, error) {
	rec, err := c.transactionRecord(ctx, txID)
	if err != nil {
		return model.Transaction{}, err
	}
	return c.normalizer.Normalize(rec)
}

// RawTransaction returns the hex serialization of a transaction.
func (c *Client) RawTransaction(ctx context.Context, txID string) (string, error) {
	rec, err := c.transactionRecord(ctx, txID)
	if err != nil {
		return "", err
	}
	if rec.Hex == "" {
		return "", malformed("transaction %s without hex", txID)
	}
	return rec.Hex, nil
}

func (c *Client) transactionRecord(ctx context.Context, txID string) (TxRecord, error) {
	if txID == "" {
		return TxRecord{}, fmt.Errorf("%w: empty txid", ErrInvalidArgument)
	}
	var rec TxRecord
	if err := c.requester.Get(ctx, "/tx/"+url.PathEscape(txID), nil, &rec); err != nil {
		return TxRecord{}, fmt.Errorf("get transaction %s: %w", txID, err)
	}
	if err := rec.validate(); err != nil {
		return TxRecord{}, fmt.Errorf("get transaction %s: %w", txID, err)
	}
	return rec, nil
}

// Transactions returns the histories of addresses, concatenated in request order.
func (c *Client) Transactions(ctx context.Context, addresses []string, afterTxID string, maxTxs int) ([]model.Transaction, error) {
	batches, err := workerpool.Map(ctx, c.workers, addresses, func(ctx context.Context, address string) ([]model.Transaction, error) {
		return c.fetcher.AddressTransactions(ctx, address, afterTxID, maxTxs)
	})
	if err != nil {
		return nil, err
	}
	return slices.Concat(batches...), nil
}

// UTXOs returns the unspent outputs of addresses, in request order.
func (c *Client) UTXOs(ctx context.Context, addresses []string, afterTxID string, maxTxs int) ([]model.UTXO, error) {
	batches, err := workerpool.Map(ctx, c.workers, addresses, func(ctx context.Context, address string) ([]model.UTXO, error) {
		txs, err := c.fetcher.AddressTransactions(ctx, address, afterTxID, maxTxs)
		if err != nil {
			return nil, err
		}
		utxos, err := c.projector.Project(ctx, []string{address}, txs)
		if err != nil {
			return nil, fmt.Errorf("project utxos of %s: %w", address, err)
		}
		return utxos, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Concat(batches...), nil
}

// IsSpent reports whether an output is no longer in the node's coin set.
func (c *Client) IsSpent(ctx context.Context, txID string, index uint32) (bool, error) {
	var coin CoinRecord
	path := "/coin/" + url.PathEscape(txID) + "/" + strconv.FormatUint(uint64(index), 10)
	err := c.requester.Get(ctx, path, nil, &coin)
	if errors.Is(err, ErrClient) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("get coin %s:%d: %w", txID, index, err)
	}
	return false, nil
}

// SendRawTransaction broadcasts a hex encoded transaction.
func (c *Client) SendRawTransaction(ctx context.Context, rawHex string) (BroadcastResult, error) {
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return BroadcastResult{}, fmt.Errorf("%w: raw transaction hex: %v", ErrInvalidArgument, err)
	}
	var msg wire.MsgTx
	if err := msg.Deserialize(bytes.NewReader(raw)); err != nil {
		return BroadcastResult{}, fmt.Errorf("%w: raw transaction: %v", ErrInvalidArgument, err)
	}

	resp := map[string]any{}
	if err := c.requester.Post(ctx, "/broadcast", broadcastRequest{Tx: rawHex}, &resp); err != nil {
		return BroadcastResult{}, fmt.Errorf("broadcast transaction: %w", err)
	}

	result := BroadcastResult{Response: resp}
	if accepted(resp["success"]) {
		result.TxID = msg.TxHash().String()
		c.logger.Info("transaction broadcast", zap.String("txid", result.TxID))
	} else {
		c.logger.Warn("node did not accept transaction", zap.Any("response", resp))
	}
	return result, nil
}

func accepted(success any) bool {
	switch v := success.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// Mempool returns the txids in the node's mempool.
func (c *Client) Mempool(ctx context.Context) ([]string, error) {
	var txIDs []string
	if err := c.requester.Get(ctx, "/mempool", nil, &txIDs); err != nil {
		return nil, fmt.Errorf("get mempool: %w", err)
	}
	return txIDs, nil
}

// InMempool reports whether txID is in the node's mempool.
func (c *Client) InMempool(ctx context.Context, txID string) (bool, error) {
	txIDs, err := c.Mempool(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(txIDs, txID), nil
}

// Block returns a block by hash or height. See Normalizer.NormalizeBlock for paging.
func (c *Client) Block(ctx context.Context, id string, parseTransactions bool, page, limit uint32) (model.Block, error) {
	if id == "" {
		return model.Block{}, fmt.Errorf("%w: empty block id", ErrInvalidArgument)
	}
	if page < 1 || limit < 1 {
		return model.Block{}, fmt.Errorf("%w: page %d and limit %d must be at least 1", ErrInvalidArgument, page, limit)
	}
	var rec BlockRecord
	if err := c.requester.Get(ctx, "/block/"+url.PathEscape(id), nil, &rec); err != nil {
		return model.Block{}, fmt.Errorf("get block %s: %w", id, err)
	}
	return c.normalizer.NormalizeBlock(rec, parseTransactions, page, limit)
}
