// Package entitlement decides whether a generation request may proceed and
// charges it against a device's free trial or a purchased token.
package entitlement

import (
	"context"
	"errors"
	"fmt"

	"futurenews/internal/model"

	"github.com/google/uuid"
)

var ErrMissingIdentity = errors.New("device_id or token is required")

type Store interface {
	GetFreeTrial(ctx context.Context, deviceID string) (*model.FreeTrial, error)
	ConsumeFreeTrial(ctx context.Context, deviceID string, limit int) (bool, error)
	GetToken(ctx context.Context, token string) (*model.GenerationToken, error)
	ConsumeToken(ctx context.Context, token string) (bool, error)
	CreateToken(ctx context.Context, token *model.GenerationToken) error
}

// Identity names who pays for a generation. Token takes precedence over
// DeviceID when both are set.
type Identity struct {
	DeviceID string
	Token    string
}

func (i Identity) IsZero() bool {
	return i.DeviceID == "" && i.Token == ""
}

type Ledger struct {
	store Store
	limit int
}

func NewLedger(store Store, freeTrialLimit int) *Ledger {
	return &Ledger{store: store, limit: freeTrialLimit}
}

// AuthorizeAndConsume charges one generation to id. It returns false when
// the allowance is exhausted and ErrMissingIdentity when id is empty.
// A successful charge is committed before returning and is never refunded.
func (l *Ledger) AuthorizeAndConsume(ctx context.Context, id Identity) (bool, error) {
	switch {
	case id.Token != "":
		ok, err := l.store.ConsumeToken(ctx, id.Token)
		if err != nil {
			return false, fmt.Errorf("consume token: %w", err)
		}
		return ok, nil
	case id.DeviceID != "":
		ok, err := l.store.ConsumeFreeTrial(ctx, id.DeviceID, l.limit)
		if err != nil {
			return false, fmt.Errorf("consume free trial: %w", err)
		}
		return ok, nil
	default:
		return false, ErrMissingIdentity
	}
}

func (l *Ledger) TrialStatus(ctx context.Context, deviceID string) (model.TrialStatus, error) {
	trial, err := l.store.GetFreeTrial(ctx, deviceID)
	if err != nil {
		return model.TrialStatus{}, fmt.Errorf("get free trial: %w", err)
	}

	used := 0
	if trial != nil {
		used = trial.UsesCount
	}

	remaining := max(l.limit-used, 0)
	return model.TrialStatus{
		HasFreeTrial:  remaining > 0,
		UsesRemaining: remaining,
	}, nil
}

func (l *Ledger) TokenStatus(ctx context.Context, token string) (model.TokenStatus, error) {
	t, err := l.store.GetToken(ctx, token)
	if err != nil {
		return model.TokenStatus{}, fmt.Errorf("get token: %w", err)
	}

	if t == nil {
		return model.TokenStatus{}, nil
	}

	return model.TokenStatus{
		Valid:                t.RemainingGenerations > 0,
		RemainingGenerations: t.RemainingGenerations,
	}, nil
}

// IssueToken mints a new token carrying the given number of generations.
func (l *Ledger) IssueToken(ctx context.Context, generations int) (*model.GenerationToken, error) {
	if generations <= 0 {
		return nil, fmt.Errorf("generations must be positive, got %d", generations)
	}

	token := &model.GenerationToken{
		Token:                "fhn_" + uuid.NewString(),
		RemainingGenerations: generations,
	}

	if err := l.store.CreateToken(ctx, token); err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return token, nil
}
