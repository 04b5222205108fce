package domain

import "context"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
)

type KindDisplay struct {
	Icon  string
	Color string
	Label string
}

var kindDisplays = map[EntryKind]KindDisplay{
	KindScan:        {Icon: "recycle", Color: "green", Label: "QR Scan"},
	KindTransferIn:  {Icon: "arrow-down", Color: "blue", Label: "Points Received"},
	KindTransferOut: {Icon: "arrow-up", Color: "orange", Label: "Points Sent"},
}

func DisplayForKind(kind EntryKind) KindDisplay {
	return kindDisplays[kind]
}

type EntryView struct {
	Entry   LedgerEntry
	Display KindDisplay
}

type HistorySummary struct {
	TotalReceived int
	TotalSent     int
	TotalScanned  int
	NetPoints     int
	TotalCount    int
}

type HistoryQuery struct {
	Kind      EntryKind
	SinceDays int
	Page      int
	PageSize  int
}

type HistoryView struct {
	Entries    []EntryView
	Summary    HistorySummary
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}

type HistoryService interface {
	GetHistory(ctx context.Context, userID int, query HistoryQuery) (HistoryView, error)
	GetRecent(ctx context.Context, userID int, limit int) ([]EntryView, error)
}
