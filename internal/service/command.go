package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"blinds-orders/internal/models"
)

// HandleMessage applies one status command from an automated updater.
// Malformed and invalid commands fail with ErrDecode or ErrValidation so the
// consumer can dead-letter them without retrying.
func (s *Service) HandleMessage(ctx context.Context, payload []byte) error {
	var cmd models.StatusCommand
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := s.validate(cmd); err != nil {
		return err
	}

	if cmd.ExpectedStatus != "" {
		cur, err := s.GetOrder(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		if cur.Status != cmd.ExpectedStatus {
			logrus.WithFields(logrus.Fields{
				"order_id": cur.ID,
				"action":   cmd.Action,
				"expected": cmd.ExpectedStatus,
				"actual":   cur.Status,
				"actor":    cmd.Actor,
			}).Info("status command skipped, order is not in the expected status")
			return nil
		}
	}

	switch cmd.Action {
	case models.ActionAdvance:
		o, advanced, err := s.AdvanceOrder(ctx, cmd.OrderID, cmd.Actor)
		if err != nil {
			return err
		}
		if !advanced {
			logrus.WithFields(logrus.Fields{
				"order_id": o.ID,
				"actor":    cmd.Actor,
			}).Info("advance command ignored, order already completed")
		}
		return nil
	case models.ActionSet:
		if cmd.Status == "" {
			return invalid("status is required for action %q", cmd.Action)
		}
		_, err := s.setStatus(ctx, cmd.OrderID, cmd.Status, cmd.Actor, sourceKafka)
		return err
	}
	return invalid("unknown action %q", cmd.Action)
}
