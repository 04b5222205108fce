package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/trash2cash/rewards/internal/pkg/database"
	"github.com/trash2cash/rewards/internal/rewards/domain"
)

// BalanceMutator applies signed point deltas to user balances. Every call
// locks the user row first, so concurrent mutations of one user serialize
// while different users stay independent.
type BalanceMutator struct {
}

func NewBalanceMutator() *BalanceMutator {
	return &BalanceMutator{}
}

func (bm *BalanceMutator) ApplyDelta(ctx context.Context, executor database.QueryExecuter, userID int, delta int) (domain.BalanceState, error) {
	lockUserSQL := `SELECT total_points FROM users WHERE id = $1 FOR UPDATE`

	var balance int
	err := executor.QueryRow(ctx, lockUserSQL, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BalanceState{}, &domain.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", userID)}
		}

		return domain.BalanceState{}, fmt.Errorf("failed to lock user row: %w", err)
	}

	newBalance := balance + delta
	if newBalance < 0 {
		return domain.BalanceState{}, &domain.InsufficientBalanceError{
			Msg: fmt.Sprintf("insufficient points: you only have %d points", balance),
		}
	}

	newLevel := domain.EcoLevelForPoints(newBalance)

	updateBalanceSQL := `UPDATE users SET total_points = $1, eco_level = $2 WHERE id = $3`
	_, err = executor.Exec(ctx, updateBalanceSQL, newBalance, newLevel, userID)
	if err != nil {
		return domain.BalanceState{}, fmt.Errorf("failed to update user balance: %w", err)
	}

	return domain.BalanceState{
		Points:   newBalance,
		EcoLevel: newLevel,
	}, nil
}
