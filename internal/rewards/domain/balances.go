package domain

import (
	"context"

	"github.com/trash2cash/rewards/internal/pkg/database"
)

type BalanceState struct {
	Points   int
	EcoLevel string
}

// BalanceMutator applies a signed delta to one user's balance and keeps the
// eco level consistent with it. It must be called within a transaction and
// serializes concurrent mutations of the same user.
type BalanceMutator interface {
	ApplyDelta(ctx context.Context, executor database.QueryExecuter, userID int, delta int) (BalanceState, error)
}

// UserLocker acquires row locks for both transfer parties in deterministic
// order before any balance is touched.
type UserLocker interface {
	LockPair(ctx context.Context, querier database.Querier, firstID, secondID int) error
}
