package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trash2cash/rewards/internal/pkg/database"
)

type EntryKind string

const (
	KindScan        EntryKind = "scan"
	KindTransferIn  EntryKind = "transfer_in"
	KindTransferOut EntryKind = "transfer_out"
)

func ParseEntryKind(raw string) (EntryKind, bool) {
	switch EntryKind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindScan:
		return KindScan, true
	case KindTransferIn:
		return KindTransferIn, true
	case KindTransferOut:
		return KindTransferOut, true
	}

	return "", false
}

type Material string

const (
	MaterialPlastic    Material = "plastic"
	MaterialMetal      Material = "metal"
	MaterialNonRecycle Material = "non-recycle"
)

func ParseMaterial(raw string) (Material, bool) {
	switch Material(strings.ToLower(strings.TrimSpace(raw))) {
	case MaterialPlastic:
		return MaterialPlastic, true
	case MaterialMetal:
		return MaterialMetal, true
	case MaterialNonRecycle:
		return MaterialNonRecycle, true
	}

	return "", false
}

func (m Material) Label() string {
	switch m {
	case MaterialPlastic:
		return "Plastic"
	case MaterialMetal:
		return "Metal"
	case MaterialNonRecycle:
		return "Non-Recyclable"
	}

	return ""
}

// LedgerEntry is immutable once appended. Points carries the magnitude only;
// direction lives in Kind.
type LedgerEntry struct {
	ID          uuid.UUID
	UserID      int
	Points      uint32
	Kind        EntryKind
	Material    Material
	Description string
	OccurredAt  time.Time
}

type HistoryFilter struct {
	Kind      EntryKind
	SinceDays int
}

type EntryPage struct {
	Entries    []LedgerEntry
	TotalCount int
}

type EntryTotals struct {
	Received   int
	Sent       int
	Scanned    int
	TotalCount int
}

// EntryAppender joins the transaction of the executor it is handed, so
// appends commit or abort together with the balance mutations around them.
type EntryAppender interface {
	Append(ctx context.Context, executor database.Executor, entry LedgerEntry) (uuid.UUID, error)
	AppendMany(ctx context.Context, executor database.Executor, entries []LedgerEntry) ([]uuid.UUID, error)
}

type EntryStore interface {
	QueryPage(ctx context.Context, userID int, filter HistoryFilter, page, pageSize int) (EntryPage, error)
	Aggregate(ctx context.Context, userID int) (EntryTotals, error)
	Recent(ctx context.Context, userID int, limit int) ([]LedgerEntry, error)
}
