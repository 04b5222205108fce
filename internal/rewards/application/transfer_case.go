package application

import (
	"context"
	"fmt"
	"time"

	"github.com/trash2cash/rewards/internal/pkg/database"
	"github.com/trash2cash/rewards/internal/pkg/logging"
	"github.com/trash2cash/rewards/internal/rewards/domain"
)

// TransferCase moves points between two users. All four side effects of a
// transfer (two balance mutations, two ledger entries) commit or abort as
// one transaction.
type TransferCase struct {
	txManager      database.TxManager
	directory      domain.Directory
	userLocker     domain.UserLocker
	balanceMutator domain.BalanceMutator
	entryAppender  domain.EntryAppender
	logger         logging.Logger
}

func NewTransferCase(
	txManager database.TxManager,
	directory domain.Directory,
	userLocker domain.UserLocker,
	balanceMutator domain.BalanceMutator,
	entryAppender domain.EntryAppender,
	logger logging.Logger,
) *TransferCase {
	return &TransferCase{
		txManager:      txManager,
		directory:      directory,
		userLocker:     userLocker,
		balanceMutator: balanceMutator,
		entryAppender:  entryAppender,
		logger:         logger,
	}
}

func (tc *TransferCase) CheckReceiver(ctx context.Context, senderID int, identifier string) (domain.ReceiverCheck, error) {
	receiver, found, err := tc.directory.Resolve(ctx, identifier)
	if err != nil {
		return domain.ReceiverCheck{}, err
	}

	if !found {
		return domain.ReceiverCheck{
			Exists:       false,
			FailureCause: "Receiver not found",
		}, nil
	}

	if receiver.ID == senderID {
		return domain.ReceiverCheck{
			Exists:       true,
			IsSelf:       true,
			ReceiverID:   receiver.ID,
			FullName:     receiver.FullName(),
			EcoLevel:     receiver.EcoLevel,
			FailureCause: "You cannot send points to yourself",
		}, nil
	}

	return domain.ReceiverCheck{
		Exists:     true,
		ReceiverID: receiver.ID,
		FullName:   receiver.FullName(),
		EcoLevel:   receiver.EcoLevel,
	}, nil
}

func (tc *TransferCase) SendPoints(ctx context.Context, senderID int, identifier string, points uint32) (domain.TransferResult, error) {
	receiver, found, err := tc.directory.Resolve(ctx, identifier)
	if err != nil {
		return domain.TransferResult{}, err
	}
	if !found {
		return domain.TransferResult{}, &domain.ReceiverNotFoundError{}
	}

	if receiver.ID == senderID {
		return domain.TransferResult{}, &domain.SelfTransferError{}
	}

	if points < domain.MinTransferPoints {
		return domain.TransferResult{}, &domain.BelowMinimumError{
			Msg: fmt.Sprintf("minimum transfer is %d points", domain.MinTransferPoints),
		}
	}

	sender, err := tc.directory.GetUser(ctx, senderID)
	if err != nil {
		return domain.TransferResult{}, err
	}

	var senderState domain.BalanceState

	err = tc.txManager.WithinTransaction(ctx, func(ctx context.Context, executor database.QueryExecuter) error {
		if err := tc.userLocker.LockPair(ctx, executor, sender.ID, receiver.ID); err != nil {
			return err
		}

		senderState, err = tc.balanceMutator.ApplyDelta(ctx, executor, sender.ID, -int(points))
		if err != nil {
			return err
		}

		if _, err := tc.balanceMutator.ApplyDelta(ctx, executor, receiver.ID, int(points)); err != nil {
			return err
		}

		occurredAt := time.Now()
		entries := []domain.LedgerEntry{
			{
				UserID:      sender.ID,
				Points:      points,
				Kind:        domain.KindTransferOut,
				Description: fmt.Sprintf("Sent %d points to %s", points, receiver.FullName()),
				OccurredAt:  occurredAt,
			},
			{
				UserID:      receiver.ID,
				Points:      points,
				Kind:        domain.KindTransferIn,
				Description: fmt.Sprintf("Received %d points from %s", points, sender.FullName()),
				OccurredAt:  occurredAt,
			},
		}

		_, err = tc.entryAppender.AppendMany(ctx, executor, entries)
		return err
	})
	if err != nil {
		return domain.TransferResult{}, err
	}

	tc.logger.Info("points transferred",
		"sender_id", sender.ID, "receiver_id", receiver.ID, "points", points)

	return domain.TransferResult{
		SenderBalance:  senderState.Points,
		SenderEcoLevel: senderState.EcoLevel,
		ReceiverName:   receiver.FullName(),
	}, nil
}
