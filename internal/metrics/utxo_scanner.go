package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-bcoin/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scannerScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_scanner",
		Name:      "scans_total",
		Help:      "Count of UTXO snapshot scans.",
	}, []string{"coin", "network", "status"})

	scannerScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_scanner",
		Name:      "scan_duration_seconds",
		Help:      "Duration of a UTXO snapshot scan.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	scannerUTXOs = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_scanner",
		Name:      "utxos",
		Help:      "Number of UTXOs found by the last successful scan.",
	}, []string{"coin", "network"})

	scannerUnspentValue = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_scanner",
		Name:      "unspent_satoshis",
		Help:      "Total value of the UTXOs found by the last successful scan.",
	}, []string{"coin", "network"})

	scannerFlushedSnapshots = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "utxo_scanner",
		Name:      "flushed_snapshots_total",
		Help:      "Count of address snapshots handed to ClickHouse, by outcome.",
	}, []string{"coin", "network", "status"})
)

// UTXOScanner tracks metrics for the UTXO snapshot scanner.
type UTXOScanner struct {
	coin    model.Coin
	network model.Network
}

// NewUTXOScanner constructs a UTXOScanner collector.
func NewUTXOScanner(coin model.Coin, network model.Network) *UTXOScanner {
	return &UTXOScanner{coin: orUnknown(coin), network: orUnknown(network)}
}

// ObserveScan records a scan outcome. Gauges only move on success.
func (m UTXOScanner) ObserveScan(err error, utxos int, value uint64, started time.Time) {
	status := statusOf(err)
	scannerScansTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	scannerScanDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	scannerUTXOs.WithLabelValues(string(m.coin), string(m.network)).Set(float64(utxos))
	scannerUnspentValue.WithLabelValues(string(m.coin), string(m.network)).Set(float64(value))
}

// ObserveFlush records one batched snapshot write.
func (m UTXOScanner) ObserveFlush(snapshots int, err error, _ time.Time) {
	scannerFlushedSnapshots.WithLabelValues(string(m.coin), string(m.network), statusOf(err)).Add(float64(snapshots))
}
