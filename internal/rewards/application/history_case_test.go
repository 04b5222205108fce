package application

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mocks "github.com/trash2cash/rewards/gen/mocks/logging"
	mockrewards "github.com/trash2cash/rewards/gen/mocks/rewards"
	"github.com/trash2cash/rewards/internal/rewards/domain"
)

func newHistoryCase(ctrl *gomock.Controller) (*HistoryCase, *mockrewards.MockEntryStore, *mockrewards.MockDirectory) {
	entryStore := mockrewards.NewMockEntryStore(ctrl)
	directory := mockrewards.NewMockDirectory(ctrl)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()

	return NewHistoryCase(entryStore, directory, logger), entryStore, directory
}

func TestHistoryCase_GetHistory(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	historyCase, entryStore, directory := newHistoryCase(ctrl)

	now := time.Now()
	entries := []domain.LedgerEntry{
		{ID: uuid.New(), UserID: 1, Points: 60, Kind: domain.KindTransferOut, OccurredAt: now},
		{ID: uuid.New(), UserID: 1, Points: 50, Kind: domain.KindScan, Material: domain.MaterialMetal, OccurredAt: now.Add(-time.Hour)},
	}

	entryStore.EXPECT().
		QueryPage(gomock.Any(), 1, domain.HistoryFilter{Kind: "", SinceDays: 7}, 1, domain.DefaultPageSize).
		Return(domain.EntryPage{Entries: entries, TotalCount: 45}, nil)
	entryStore.EXPECT().
		Aggregate(gomock.Any(), 1).
		Return(domain.EntryTotals{Received: 0, Sent: 60, Scanned: 50, TotalCount: 3}, nil)
	directory.EXPECT().
		GetUser(gomock.Any(), 1).
		Return(domain.User{ID: 1, TotalPoints: 0, EcoLevel: domain.LevelNewbie}, nil)

	view, err := historyCase.GetHistory(t.Context(), 1, domain.HistoryQuery{SinceDays: 7})

	require.NoError(t, err)
	require.Len(t, view.Entries, 2)
	assert.Equal(t, "arrow-up", view.Entries[0].Display.Icon)
	assert.Equal(t, "recycle", view.Entries[1].Display.Icon)
	assert.Equal(t, domain.HistorySummary{
		TotalReceived: 0,
		TotalSent:     60,
		TotalScanned:  50,
		NetPoints:     0,
		TotalCount:    3,
	}, view.Summary)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, domain.DefaultPageSize, view.PageSize)
	assert.Equal(t, 45, view.TotalCount)
	assert.Equal(t, 3, view.TotalPages)
}

func TestHistoryCase_GetHistory_ClampsPageSize(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	historyCase, entryStore, directory := newHistoryCase(ctrl)

	entryStore.EXPECT().
		QueryPage(gomock.Any(), 1, domain.HistoryFilter{}, 1, domain.MaxPageSize).
		Return(domain.EntryPage{Entries: nil, TotalCount: 150}, nil)
	entryStore.EXPECT().
		Aggregate(gomock.Any(), 1).
		Return(domain.EntryTotals{}, nil)
	directory.EXPECT().
		GetUser(gomock.Any(), 1).
		Return(domain.User{ID: 1}, nil)

	view, err := historyCase.GetHistory(t.Context(), 1, domain.HistoryQuery{Page: 0, PageSize: 1000})

	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageSize, view.PageSize)
	assert.Equal(t, 2, view.TotalPages)
}

func TestHistoryCase_GetHistory_PropagatesErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	historyCase, entryStore, directory := newHistoryCase(ctrl)

	entryStore.EXPECT().
		QueryPage(gomock.Any(), 1, gomock.Any(), 1, domain.DefaultPageSize).
		Return(domain.EntryPage{}, assert.AnError)
	entryStore.EXPECT().
		Aggregate(gomock.Any(), 1).
		Return(domain.EntryTotals{}, nil).
		AnyTimes()
	directory.EXPECT().
		GetUser(gomock.Any(), 1).
		Return(domain.User{}, nil).
		AnyTimes()

	_, err := historyCase.GetHistory(t.Context(), 1, domain.HistoryQuery{})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestHistoryCase_GetRecent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	historyCase, entryStore, _ := newHistoryCase(ctrl)

	entries := []domain.LedgerEntry{
		{ID: uuid.New(), UserID: 1, Points: 20, Kind: domain.KindTransferIn},
	}

	entryStore.EXPECT().
		Recent(gomock.Any(), 1, 10).
		Return(entries, nil)

	views, err := historyCase.GetRecent(t.Context(), 1, 10)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Points Received", views[0].Display.Label)
}
