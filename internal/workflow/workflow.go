// Package workflow holds the fulfillment state machine.
//
// Two write paths exist on purpose: Advance moves one step along
// pending -> in-progress -> ready -> completed and never skips, while
// SetStatus assigns any valid status and is meant for sales corrections.
package workflow

import (
	"fmt"
	"time"

	"blinds-orders/internal/models"
)

var sequence = []models.Status{
	models.StatusPending,
	models.StatusInProgress,
	models.StatusReady,
	models.StatusCompleted,
}

// NextStatus returns the status after current. ok is false at completed and for unknown values.
func NextStatus(current models.Status) (next models.Status, ok bool) {
	for i, s := range sequence {
		if s == current && i+1 < len(sequence) {
			return sequence[i+1], true
		}
	}
	return "", false
}

// Rank is the position of a status in the forward order, -1 if unknown.
func Rank(s models.Status) int {
	for i, v := range sequence {
		if v == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether no automatic transition leaves s.
func Terminal(s models.Status) bool {
	_, ok := NextStatus(s)
	return !ok
}

// Advance returns a copy of o moved one step forward and stamped with actor and now.
// At the terminal status it returns o unchanged with advanced=false.
func Advance(o models.Order, actor string, now time.Time) (out models.Order, advanced bool) {
	next, ok := NextStatus(o.Status)
	if !ok {
		return o, false
	}
	out = o.Clone()
	out.Status = next
	Stamp(&out, actor, now)
	return out, true
}

// SetStatus returns a copy of o with the given status, bypassing the forward-only rule.
func SetStatus(o models.Order, status models.Status, actor string, now time.Time) (models.Order, error) {
	if !status.Valid() {
		return o, fmt.Errorf("unknown status %q", status)
	}
	out := o.Clone()
	out.Status = status
	Stamp(&out, actor, now)
	return out, nil
}

// Stamp sets the update audit fields. UpdatedAt never moves backwards.
func Stamp(o *models.Order, actor string, now time.Time) {
	if now.Before(o.UpdatedAt) {
		now = o.UpdatedAt
	}
	o.UpdatedAt = now
	o.UpdatedBy = actor
}
