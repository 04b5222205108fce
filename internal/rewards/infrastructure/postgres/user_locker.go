package postgres

import (
	"context"
	"fmt"

	"github.com/trash2cash/rewards/internal/pkg/database"
	"github.com/trash2cash/rewards/internal/rewards/domain"
)

// UserLocker takes row locks on both transfer parties in id order, so two
// opposing transfers between the same pair never deadlock.
type UserLocker struct {
}

func NewUserLocker() *UserLocker {
	return &UserLocker{}
}

func (ul *UserLocker) LockPair(ctx context.Context, querier database.Querier, firstID, secondID int) error {
	lockUsersSQL := `SELECT id FROM users WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := querier.Query(ctx, lockUsersSQL, []int{firstID, secondID})
	if err != nil {
		return fmt.Errorf("failed to lock user rows: %w", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan locked user row: %w", err)
		}
		locked++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read locked user rows: %w", err)
	}

	if locked != 2 {
		return &domain.UserNotFoundError{}
	}

	return nil
}
