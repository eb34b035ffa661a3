package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/bcoin"
	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"go.uber.org/zap"
)

const (
	defaultFeeBlocks  = 3
	defaultBlockLimit = 20
	maxBodyBytes      = 1 << 20
)

// Handler serves the lookup API.
type Handler struct {
	client    NodeClient
	snapshots SnapshotReader
	coin      model.Coin
	network   model.Network
	maxTxs    int
	logger    *zap.Logger
	mux       *http.ServeMux
}

// NewHandler builds a Handler. snapshots may be nil, in which case the
// snapshot route is not registered.
func NewHandler(client NodeClient, snapshots SnapshotReader, coin model.Coin, network model.Network, maxTxs int, logger *zap.Logger) *Handler {
	h := &Handler{
		client:    client,
		snapshots: snapshots,
		coin:      coin,
		network:   network,
		maxTxs:    maxTxs,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /v1/health", h.health)
	h.mux.HandleFunc("GET /v1/height", h.height)
	h.mux.HandleFunc("GET /v1/fee", h.fee)
	h.mux.HandleFunc("GET /v1/addresses/{address}/transactions", h.addressTransactions)
	h.mux.HandleFunc("GET /v1/addresses/{address}/utxos", h.addressUTXOs)
	if snapshots != nil {
		h.mux.HandleFunc("GET /v1/addresses/{address}/snapshot", h.addressSnapshot)
	}
	h.mux.HandleFunc("GET /v1/transactions/{txid}", h.transaction)
	h.mux.HandleFunc("GET /v1/transactions/{txid}/raw", h.rawTransaction)
	h.mux.HandleFunc("GET /v1/transactions/{txid}/outputs/{index}/spent", h.outputSpent)
	h.mux.HandleFunc("POST /v1/transactions", h.broadcast)
	h.mux.HandleFunc("GET /v1/mempool", h.mempool)
	h.mux.HandleFunc("GET /v1/blocks/{id}", h.block)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) height(w http.ResponseWriter, r *http.Request) {
	height, err := h.client.BlockCount(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]uint64{"height": height})
}

func (h *Handler) fee(w http.ResponseWriter, r *http.Request) {
	blocks, err := intQuery(r, "blocks", defaultFeeBlocks)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rate, ok, err := h.client.EstimateFee(r.Context(), blocks)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := feeResponse{Blocks: blocks, Available: ok}
	if ok {
		resp.Rate = int64(rate)
		resp.BTCPerKB = rate.ToUnit(btcutil.AmountBTC)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) addressTransactions(w http.ResponseWriter, r *http.Request) {
	maxTxs, err := intQuery(r, "max", h.maxTxs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	txs, err := h.client.Transactions(r.Context(), []string{r.PathValue("address")}, r.URL.Query().Get("after"), maxTxs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

func (h *Handler) addressUTXOs(w http.ResponseWriter, r *http.Request) {
	maxTxs, err := intQuery(r, "max", h.maxTxs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utxos, err := h.client.UTXOs(r.Context(), []string{r.PathValue("address")}, r.URL.Query().Get("after"), maxTxs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUTXODTOs(utxos))
}

func (h *Handler) addressSnapshot(w http.ResponseWriter, r *http.Request) {
	utxos, err := h.snapshots.AddressUTXOs(r.Context(), h.coin, h.network, r.PathValue("address"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUTXODTOs(utxos))
}

func (h *Handler) transaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.client.Transaction(r.Context(), r.PathValue("txid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toTransactionDTO(tx))
}

func (h *Handler) rawTransaction(w http.ResponseWriter, r *http.Request) {
	txID := r.PathValue("txid")
	raw, err := h.client.RawTransaction(r.Context(), txID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"txid": txID, "hex": raw})
}

func (h *Handler) outputSpent(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.ParseUint(r.PathValue("index"), 10, 32)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: output index: %w", bcoin.ErrInvalidArgument, err))
		return
	}

	spent, err := h.client.IsSpent(r.Context(), r.PathValue("txid"), uint32(index))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"spent": spent})
}

func (h *Handler) broadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: decode body: %w", bcoin.ErrInvalidArgument, err))
		return
	}

	res, err := h.client.SendRawTransaction(r.Context(), req.Hex)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, broadcastResponse{
		TxID:     res.TxID,
		Accepted: res.TxID != "",
		Response: res.Response,
	})
}

func (h *Handler) mempool(w http.ResponseWriter, r *http.Request) {
	txIDs, err := h.client.Mempool(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if txIDs == nil {
		txIDs = []string{}
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"txids": txIDs})
}

func (h *Handler) block(w http.ResponseWriter, r *http.Request) {
	page, err := uint32Query(r, "page", 1)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := uint32Query(r, "limit", defaultBlockLimit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if page < 1 || limit < 1 {
		h.writeError(w, r, fmt.Errorf("%w: page and limit must be at least 1", bcoin.ErrInvalidArgument))
		return
	}
	parse := true
	if v := r.URL.Query().Get("txs"); v != "" {
		if parse, err = strconv.ParseBool(v); err != nil {
			h.writeError(w, r, fmt.Errorf("%w: txs: %w", bcoin.ErrInvalidArgument, err))
			return
		}
	}

	block, err := h.client.Block(r.Context(), r.PathValue("id"), parse, page, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toBlockDTO(block))
}

func intQuery(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", bcoin.ErrInvalidArgument, name, err)
	}
	return n, nil
}

func uint32Query(r *http.Request, name string, fallback uint32) (uint32, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", bcoin.ErrInvalidArgument, name, err)
	}
	return uint32(n), nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	} else {
		h.logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	var clientErr *bcoin.ClientError
	switch {
	case errors.Is(err, bcoin.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.As(err, &clientErr) && clientErr.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	case errors.Is(err, bcoin.ErrMaxRetriesExceeded), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, bcoin.ErrClient), errors.Is(err, bcoin.ErrMalformedRecord):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
