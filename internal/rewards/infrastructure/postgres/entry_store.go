package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trash2cash/rewards/internal/pkg/database"
	"github.com/trash2cash/rewards/internal/pkg/logging"
	"github.com/trash2cash/rewards/internal/rewards/domain"
)

const entryColumns = `id, user_id, points, action, material_type, description, created_at`

// EntryStore is the append-only ledger of point-affecting events. Appends
// take an explicit executor so they run inside the caller's transaction;
// reads go through the pooled query executer directly.
type EntryStore struct {
	queryExecuter database.QueryExecuter
	logger        logging.Logger
}

func NewEntryStore(queryExecuter database.QueryExecuter, logger logging.Logger) *EntryStore {
	return &EntryStore{
		queryExecuter: queryExecuter,
		logger:        logger,
	}
}

func (es *EntryStore) Append(ctx context.Context, executor database.Executor, entry domain.LedgerEntry) (uuid.UUID, error) {
	ids, err := es.AppendMany(ctx, executor, []domain.LedgerEntry{entry})
	if err != nil {
		return uuid.Nil, err
	}

	return ids[0], nil
}

func (es *EntryStore) AppendMany(ctx context.Context, executor database.Executor, entries []domain.LedgerEntry) ([]uuid.UUID, error) {
	insertEntrySQL := `INSERT INTO history (id, user_id, points, action, material_type, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		id := entry.ID
		if id == uuid.Nil {
			// v7 ids sort by creation time, so the id tiebreak in history
			// ordering follows insertion order.
			var err error
			id, err = uuid.NewV7()
			if err != nil {
				return nil, fmt.Errorf("failed to generate entry id: %w", err)
			}
		}

		occurredAt := entry.OccurredAt
		if occurredAt.IsZero() {
			occurredAt = time.Now()
		}

		var material any
		if entry.Material != "" {
			material = string(entry.Material)
		}

		_, err := executor.Exec(ctx, insertEntrySQL,
			id, entry.UserID, entry.Points, string(entry.Kind), material, entry.Description, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert history entry: %w", err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func (es *EntryStore) QueryPage(ctx context.Context, userID int, filter domain.HistoryFilter, page, pageSize int) (domain.EntryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}

	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}

	if filter.SinceDays > 0 {
		args = append(args, time.Now().AddDate(0, 0, -filter.SinceDays))
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	countSQL := `SELECT COUNT(*) FROM history WHERE ` + where
	var totalCount int
	if err := es.queryExecuter.QueryRow(ctx, countSQL, args...).Scan(&totalCount); err != nil {
		return domain.EntryPage{}, fmt.Errorf("failed to count history entries: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	pageSQL := fmt.Sprintf(`SELECT %s FROM history WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		entryColumns, where, len(args)-1, len(args))

	entries, err := es.queryEntries(ctx, pageSQL, args...)
	if err != nil {
		return domain.EntryPage{}, err
	}

	return domain.EntryPage{
		Entries:    entries,
		TotalCount: totalCount,
	}, nil
}

func (es *EntryStore) Aggregate(ctx context.Context, userID int) (domain.EntryTotals, error) {
	aggregateSQL := `SELECT
	COALESCE(SUM(CASE WHEN action = 'transfer_in' THEN points END), 0),
	COALESCE(SUM(CASE WHEN action = 'transfer_out' THEN points END), 0),
	COALESCE(SUM(CASE WHEN action = 'scan' THEN points END), 0),
	COUNT(*)
FROM history
WHERE user_id = $1`

	var totals domain.EntryTotals
	err := es.queryExecuter.QueryRow(ctx, aggregateSQL, userID).
		Scan(&totals.Received, &totals.Sent, &totals.Scanned, &totals.TotalCount)
	if err != nil {
		return domain.EntryTotals{}, fmt.Errorf("failed to aggregate history entries: %w", err)
	}

	return totals, nil
}

func (es *EntryStore) Recent(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error) {
	if limit < 1 {
		limit = domain.DefaultRecentLimit
	}
	if limit > domain.MaxRecentLimit {
		limit = domain.MaxRecentLimit
	}

	recentSQL := `SELECT ` + entryColumns + ` FROM history
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

	return es.queryEntries(ctx, recentSQL, userID, limit)
}

func (es *EntryStore) queryEntries(ctx context.Context, sql string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := es.queryExecuter.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var entry domain.LedgerEntry
		var action string
		var material *string

		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Points, &action, &material, &entry.Description, &entry.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.Kind = domain.EntryKind(action)
		if material != nil {
			entry.Material = domain.Material(*material)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history entries: %w", err)
	}

	return entries, nil
}
