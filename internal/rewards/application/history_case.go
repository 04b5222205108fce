package application

import (
	"context"

	"github.com/trash2cash/rewards/internal/pkg/logging"
	"github.com/trash2cash/rewards/internal/rewards/domain"
	"golang.org/x/sync/errgroup"
)

// HistoryCase assembles the paginated ledger view. The summary block is
// always computed over the full unfiltered history plus the current balance,
// no matter which filtered page was requested.
type HistoryCase struct {
	entryStore domain.EntryStore
	directory  domain.Directory
	logger     logging.Logger
}

func NewHistoryCase(entryStore domain.EntryStore, directory domain.Directory, logger logging.Logger) *HistoryCase {
	return &HistoryCase{
		entryStore: entryStore,
		directory:  directory,
		logger:     logger,
	}
}

func (hc *HistoryCase) GetHistory(ctx context.Context, userID int, query domain.HistoryQuery) (domain.HistoryView, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}

	group, groupCtx := errgroup.WithContext(ctx)

	var entryPage domain.EntryPage
	var totals domain.EntryTotals
	var user domain.User

	group.Go(func() error {
		var err error
		entryPage, err = hc.entryStore.QueryPage(groupCtx, userID, domain.HistoryFilter{
			Kind:      query.Kind,
			SinceDays: query.SinceDays,
		}, page, pageSize)
		return err
	})

	group.Go(func() error {
		var err error
		totals, err = hc.entryStore.Aggregate(groupCtx, userID)
		return err
	})

	group.Go(func() error {
		var err error
		user, err = hc.directory.GetUser(groupCtx, userID)
		return err
	})

	if err := group.Wait(); err != nil {
		return domain.HistoryView{}, err
	}

	totalPages := entryPage.TotalCount / pageSize
	if entryPage.TotalCount%pageSize != 0 {
		totalPages++
	}

	return domain.HistoryView{
		Entries: toEntryViews(entryPage.Entries),
		Summary: domain.HistorySummary{
			TotalReceived: totals.Received,
			TotalSent:     totals.Sent,
			TotalScanned:  totals.Scanned,
			NetPoints:     user.TotalPoints,
			TotalCount:    totals.TotalCount,
		},
		Page:       page,
		PageSize:   pageSize,
		TotalCount: entryPage.TotalCount,
		TotalPages: totalPages,
	}, nil
}

func (hc *HistoryCase) GetRecent(ctx context.Context, userID int, limit int) ([]domain.EntryView, error) {
	entries, err := hc.entryStore.Recent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	return toEntryViews(entries), nil
}

func toEntryViews(entries []domain.LedgerEntry) []domain.EntryView {
	views := make([]domain.EntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, domain.EntryView{
			Entry:   entry,
			Display: domain.DisplayForKind(entry.Kind),
		})
	}

	return views
}
