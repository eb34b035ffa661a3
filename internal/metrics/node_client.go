// Package metrics holds the Prometheus collectors of the bcoin adapter.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeClientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "bcoin_client",
		Name:      "requests_total",
		Help:      "Count of bcoin REST requests.",
	}, []string{"operation", "coin", "network", "status"})
	nodeClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "bcoin_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of bcoin REST requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "coin", "network", "status"})
)

// NodeClient tracks metrics for requests to a bcoin node.
type NodeClient struct {
	coin    model.Coin
	network model.Network
}

// NewNodeClient constructs a metrics collector for node requests.
func NewNodeClient(coin model.Coin, network model.Network) *NodeClient {
	return &NodeClient{coin: orUnknown(coin), network: orUnknown(network)}
}

// Observe records a single request outcome and duration.
func (m NodeClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	nodeClientRequestsTotal.WithLabelValues(operation, string(m.coin), string(m.network), status).Inc()
	nodeClientRequestDuration.WithLabelValues(operation, string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown[T ~string](v T) T {
	if v == "" {
		return "unknown"
	}
	return v
}
