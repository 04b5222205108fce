package domain

import (
	"context"
	"time"
)

const MinTransferPoints = 5

type ReceiverCheck struct {
	Exists       bool
	IsSelf       bool
	FullName     string
	EcoLevel     string
	ReceiverID   int
	FailureCause string
}

type TransferResult struct {
	SenderBalance  int
	SenderEcoLevel string
	ReceiverName   string
}

type TransferService interface {
	CheckReceiver(ctx context.Context, senderID int, identifier string) (ReceiverCheck, error)
	SendPoints(ctx context.Context, senderID int, identifier string, points uint32) (TransferResult, error)
}

type ScanResult struct {
	NewBalance    int
	EcoLevel      string
	MaterialLabel string
}

type ScanService interface {
	RecordScan(ctx context.Context, userID int, materialRaw string, points uint32, scannedAt time.Time) (ScanResult, error)
}
