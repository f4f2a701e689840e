package booking

import (
	"time"

	"github.com/chamadospro/field-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(t *models.Ticket, now time.Time, reason string) error {
	if err := CanCancel(Status(t.Status)); err != nil {
		return err
	}

	t.Status = string(StatusCancelled)
	t.CancellationReason = reason
	t.CancelledAt = &now
	return nil
}

func Start(t *models.Ticket, now time.Time) error {
	if err := CanStart(Status(t.Status)); err != nil {
		return err
	}

	t.Status = string(StatusInProgress)
	t.StartedAt = &now
	return nil
}

func Complete(t *models.Ticket, now time.Time) error {
	if err := CanComplete(Status(t.Status)); err != nil {
		return err
	}

	t.Status = string(StatusCompleted)
	t.CompletedAt = &now
	return nil
}

func MarkNoShow(t *models.Ticket, now time.Time) error {
	if err := CanMarkNoShow(Status(t.Status)); err != nil {
		return err
	}

	t.Status = string(StatusNoShow)
	return nil
}
