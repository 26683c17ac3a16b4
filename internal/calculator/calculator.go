package calculator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"calculation-store/internal/models"
	"calculation-store/internal/storage"
)

// Service records calculations for users. It builds records through the
// models factory and persists them through the store; it keeps no state of
// its own.
type Service struct {
	store *storage.Store
	log   *zap.Logger
}

func New(store *storage.Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log.Named("calculator")}
}

// Calculate builds a calculation, computes it and stores it with the result
// cached. Nothing is written when the type is unknown or the computation
// fails.
func (s *Service) Calculate(ctx context.Context, userID uuid.UUID, typeLabel string, inputs any) (models.Variant, error) {
	v, err := models.Create(typeLabel, userID, inputs)
	if err != nil {
		return nil, err
	}
	result, err := v.Calc().CacheResult()
	if err != nil {
		s.log.Debug("calculation rejected",
			zap.Stringer("user_id", userID),
			zap.String("type", typeLabel),
			zap.Error(err),
		)
		return nil, err
	}
	if err := s.store.Calculations().Create(ctx, v); err != nil {
		return nil, fmt.Errorf("calculator: save: %w", err)
	}

	s.log.Info("calculation stored",
		zap.Stringer("user_id", userID),
		zap.Stringer("calculation_id", v.Calc().ID),
		zap.String("type", typeLabel),
		zap.String("expression", v.Calc().Expression()),
		zap.Float64("result", result),
	)
	return v, nil
}

// Record stores a calculation without computing it. Invalid inputs are
// accepted here and reported by Evaluate.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, typeLabel string, inputs any) (models.Variant, error) {
	v, err := models.Create(typeLabel, userID, inputs)
	if err != nil {
		return nil, err
	}
	if err := s.store.Calculations().Create(ctx, v); err != nil {
		return nil, fmt.Errorf("calculator: save: %w", err)
	}
	s.log.Info("calculation recorded",
		zap.Stringer("user_id", userID),
		zap.Stringer("calculation_id", v.Calc().ID),
		zap.String("type", typeLabel),
	)
	return v, nil
}

// Evaluate loads a calculation and computes its result from the stored
// inputs. The cached result column is neither read nor written.
func (s *Service) Evaluate(ctx context.Context, id uuid.UUID) (float64, error) {
	v, err := s.store.Calculations().Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return v.GetResult()
}

// Recompute replaces the inputs of a stored calculation and stores the new
// result. If the new inputs do not compute, the stored row is left unchanged.
func (s *Service) Recompute(ctx context.Context, id uuid.UUID, inputs any) (models.Variant, error) {
	var out models.Variant
	err := s.store.Transaction(ctx, func(tx *storage.Store) error {
		v, err := tx.Calculations().Get(ctx, id)
		if err != nil {
			return err
		}
		v.Calc().SetInputs(inputs)
		if _, err := v.Calc().CacheResult(); err != nil {
			return err
		}
		if err := tx.Calculations().Update(ctx, v); err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("calculation recomputed",
		zap.Stringer("calculation_id", id),
		zap.String("expression", out.Calc().Expression()),
	)
	return out, nil
}

// History lists a user's calculations, newest first. An empty typ lists
// every type.
func (s *Service) History(ctx context.Context, userID uuid.UUID, typ models.Type) ([]models.Variant, error) {
	return s.store.Calculations().List(ctx, storage.Filter{
		UserID:      userID,
		Type:        typ,
		NewestFirst: true,
	})
}

// Summary counts a user's calculations per type.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (map[models.Type]int64, error) {
	return s.store.Calculations().CountByType(ctx, userID)
}
