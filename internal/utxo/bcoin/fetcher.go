package bcoin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"go.uber.org/zap"
)

const (
	// DefaultPageSize is the number of records requested per address page.
	DefaultPageSize = 20
	// DefaultMaxTransactions caps how many transactions are collected per address.
	DefaultMaxTransactions = 20
)

// Fetcher collects the transaction history of one address across pages.
type Fetcher struct {
	requester  Requester
	normalizer *Normalizer
	pageSize   int
	maxTxs     int
	logger     *zap.Logger
}

// NewFetcher creates a Fetcher. Non-positive sizes fall back to the defaults.
func NewFetcher(requester Requester, normalizer *Normalizer, pageSize, maxTxs int, logger *zap.Logger) *Fetcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if maxTxs <= 0 {
		maxTxs = DefaultMaxTransactions
	}
	return &Fetcher{
		requester:  requester,
		normalizer: normalizer,
		pageSize:   pageSize,
		maxTxs:     maxTxs,
		logger:     logger.Named("fetcher"),
	}
}

// AddressTransactions returns the transactions of address, starting after afterTxID when set.
// Paging stops on a short page or once maxTxs records were collected (0 uses the fetcher default).
// Spend status is resolved whenever the history starts from genesis (no cursor).
func (f *Fetcher) AddressTransactions(ctx context.Context, address, afterTxID string, maxTxs int) ([]model.Transaction, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidArgument)
	}
	if maxTxs <= 0 {
		maxTxs = f.maxTxs
	}

	logger := f.logger.With(zap.String("address", address))
	path := "/tx/address/" + url.PathEscape(address)
	cursor := afterTxID
	txs := make([]model.Transaction, 0)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		query := url.Values{}
		query.Set("limit", strconv.Itoa(f.pageSize))
		if cursor != "" {
			query.Set("after", cursor)
		}

		var page []TxRecord
		if err := f.requester.Get(ctx, path, query, &page); err != nil {
			return nil, fmt.Errorf("list transactions of %s after %q: %w", address, cursor, err)
		}
		for _, rec := range page {
			tx, err := f.normalizer.Normalize(rec)
			if err != nil {
				return nil, fmt.Errorf("list transactions of %s: %w", address, err)
			}
			txs = append(txs, tx)
		}

		logger.Debug("fetched address page",
			zap.String("after", cursor),
			zap.Int("records", len(page)),
			zap.Int("total", len(txs)))

		if len(page) < f.pageSize || len(txs) >= maxTxs {
			break
		}
		cursor = page[len(page)-1].Hash
	}

	if afterTxID != "" {
		logger.Debug("resumed history, spend status left unknown",
			zap.String("after", afterTxID),
			zap.Int("transactions", len(txs)))
		return txs, nil
	}
	if len(txs) >= maxTxs {
		logger.Warn("history reached the transaction cap, later spends are not seen",
			zap.Int("transactions", len(txs)),
			zap.Int("max_txs", maxTxs))
	}

	stats := chain.ResolveSpends(address, txs)
	logger.Debug("resolved spends",
		zap.Int("spent", stats.Spent),
		zap.Int("unspent", stats.Unspent))
	if stats.Duplicates > 0 {
		logger.Debug("outputs referenced by more than one input", zap.Int("duplicates", stats.Duplicates))
	}
	return txs, nil
}
