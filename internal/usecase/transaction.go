package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Transaction runs steps in order and, when one fails, runs the compensations
// of the steps that already succeeded in reverse order.
type Transaction struct {
	steps []step
}

type step struct {
	name       string
	fn         func(context.Context) error
	compensate func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddStep registers an operation. compensate may be nil when there is nothing to undo.
func (t *Transaction) AddStep(name string, fn, compensate func(context.Context) error) {
	t.steps = append(t.steps, step{name: name, fn: fn, compensate: compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", s.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.compensate == nil {
			continue
		}
		if err := s.compensate(ctx); err != nil {
			log.Error().Err(err).Str("step", s.name).Msg("compensation failed, data may be inconsistent")
		}
	}
}
