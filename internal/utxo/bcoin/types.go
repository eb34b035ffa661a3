package bcoin

import (
	"context"
	"net/url"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Requester performs JSON requests against the node REST API.
	Requester interface {
		Get(ctx context.Context, path string, query url.Values, out any) error
		Post(ctx context.Context, path string, body, out any) error
	}
	// RPCMetrics records metrics for node calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
