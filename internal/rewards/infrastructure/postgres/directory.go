package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/trash2cash/rewards/internal/pkg/database"
	"github.com/trash2cash/rewards/internal/rewards/domain"
)

const userColumns = `id, email, phone_number, first_name, last_name, total_points, eco_level`

// Directory looks users up by id or by their identity keys. An identifier is
// tried as an email first (case-insensitive), then as a phone number.
type Directory struct {
	querier database.Querier
}

func NewDirectory(querier database.Querier) *Directory {
	return &Directory{
		querier: querier,
	}
}

func (d *Directory) Resolve(ctx context.Context, identifier string) (domain.User, bool, error) {
	identifier = strings.TrimSpace(identifier)

	resolveSQL := `SELECT ` + userColumns + `
FROM users
WHERE lower(email) = lower($1) OR phone_number = $1
ORDER BY (lower(email) = lower($1)) DESC
LIMIT 1`

	user, err := scanUser(d.querier.QueryRow(ctx, resolveSQL, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, false, nil
		}

		return domain.User{}, false, fmt.Errorf("failed to resolve user by identifier: %w", err)
	}

	return user, true, nil
}

func (d *Directory) GetUser(ctx context.Context, userID int) (domain.User, error) {
	getUserSQL := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(d.querier.QueryRow(ctx, getUserSQL, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, &domain.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", userID)}
		}

		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PhoneNumber, &user.FirstName, &user.LastName, &user.TotalPoints, &user.EcoLevel)
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
