// Package chain reconstructs spend state across a batch of transactions.
package chain

import "context"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SpendChecker asks the node whether a single output has been spent.
	SpendChecker interface {
		IsSpent(ctx context.Context, txID string, index uint32) (bool, error)
	}
)
