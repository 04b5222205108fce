package application

import (
	"context"
	"fmt"
	"time"

	"github.com/trash2cash/rewards/internal/pkg/database"
	"github.com/trash2cash/rewards/internal/pkg/logging"
	"github.com/trash2cash/rewards/internal/rewards/domain"
)

// ScanCase credits one user for one externally-reported recycling event.
// The event time comes from the scanning device, not the server clock.
type ScanCase struct {
	txManager      database.TxManager
	directory      domain.Directory
	balanceMutator domain.BalanceMutator
	entryAppender  domain.EntryAppender
	logger         logging.Logger
}

func NewScanCase(
	txManager database.TxManager,
	directory domain.Directory,
	balanceMutator domain.BalanceMutator,
	entryAppender domain.EntryAppender,
	logger logging.Logger,
) *ScanCase {
	return &ScanCase{
		txManager:      txManager,
		directory:      directory,
		balanceMutator: balanceMutator,
		entryAppender:  entryAppender,
		logger:         logger,
	}
}

func (sc *ScanCase) RecordScan(ctx context.Context, userID int, materialRaw string, points uint32, scannedAt time.Time) (domain.ScanResult, error) {
	material, ok := domain.ParseMaterial(materialRaw)
	if !ok {
		return domain.ScanResult{}, &domain.InvalidMaterialError{
			Msg: fmt.Sprintf("unknown material type %q", materialRaw),
		}
	}

	if points < 1 {
		return domain.ScanResult{}, &domain.InvalidPointsError{}
	}

	user, err := sc.directory.GetUser(ctx, userID)
	if err != nil {
		return domain.ScanResult{}, err
	}

	if scannedAt.IsZero() {
		scannedAt = time.Now()
	}

	var state domain.BalanceState

	err = sc.txManager.WithinTransaction(ctx, func(ctx context.Context, executor database.QueryExecuter) error {
		state, err = sc.balanceMutator.ApplyDelta(ctx, executor, user.ID, int(points))
		if err != nil {
			return err
		}

		_, err = sc.entryAppender.Append(ctx, executor, domain.LedgerEntry{
			UserID:      user.ID,
			Points:      points,
			Kind:        domain.KindScan,
			Material:    material,
			Description: fmt.Sprintf("Scanned %s for %d points", material.Label(), points),
			OccurredAt:  scannedAt,
		})
		return err
	})
	if err != nil {
		return domain.ScanResult{}, err
	}

	sc.logger.Info("recycling scan recorded",
		"user_id", user.ID, "material", string(material), "points", points)

	return domain.ScanResult{
		NewBalance:    state.Points,
		EcoLevel:      state.EcoLevel,
		MaterialLabel: material.Label(),
	}, nil
}
