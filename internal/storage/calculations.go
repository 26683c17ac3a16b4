package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"calculation-store/internal/models"
)

type CalculationRepo struct {
	db *gorm.DB
}

// Filter narrows List and Count. Zero values match everything.
type Filter struct {
	UserID uuid.UUID
	Type   models.Type
	// NewestFirst orders by created_at descending instead of ascending.
	NewestFirst bool
	Limit       int
}

func (f Filter) apply(db *gorm.DB) *gorm.DB {
	if f.UserID != uuid.Nil {
		db = db.Where("user_id = ?", f.UserID)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	return db
}

// Create inserts a calculation; id and timestamps are assigned by the store.
// A user_id that names no user fails with ErrForeignKey.
func (r *CalculationRepo) Create(ctx context.Context, v models.Variant) error {
	c := v.Calc()
	if err := r.db.WithContext(ctx).Omit("User").Create(c).Error; err != nil {
		return mapError(err, "calculation", c.Type)
	}
	return nil
}

// CreateBatch inserts all calculations in one transaction.
func (r *CalculationRepo) CreateBatch(ctx context.Context, vs []models.Variant) error {
	if len(vs) == 0 {
		return nil
	}
	calcs := make([]*models.Calculation, len(vs))
	for i, v := range vs {
		calcs[i] = v.Calc()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("User").Create(&calcs).Error
	})
	if err != nil {
		return mapError(err, "calculations", fmt.Sprintf("batch of %d", len(vs)))
	}
	return nil
}

// Get loads a calculation with its owner and resolves it to its variant.
func (r *CalculationRepo) Get(ctx context.Context, id uuid.UUID) (models.Variant, error) {
	var c models.Calculation
	if err := r.db.WithContext(ctx).Preload("User").First(&c, "id = ?", id).Error; err != nil {
		return nil, mapError(err, "calculation", id)
	}
	return models.Resolve(&c)
}

func (r *CalculationRepo) List(ctx context.Context, f Filter) ([]models.Variant, error) {
	q := f.apply(r.db.WithContext(ctx).Model(&models.Calculation{}))
	if f.NewestFirst {
		q = q.Order("created_at DESC").Order("id DESC")
	} else {
		q = q.Order("created_at ASC").Order("id ASC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []*models.Calculation
	if err := q.Find(&rows).Error; err != nil {
		return nil, mapError(err, "calculations", f.Type)
	}

	out := make([]models.Variant, 0, len(rows))
	for _, c := range rows {
		v, err := models.Resolve(c)
		if err != nil {
			return nil, fmt.Errorf("calculation %s: %w", c.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *CalculationRepo) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	if err := f.apply(r.db.WithContext(ctx).Model(&models.Calculation{})).Count(&n).Error; err != nil {
		return 0, mapError(err, "calculations", f.Type)
	}
	return n, nil
}

// CountByType groups the calculations of userID (all users for uuid.Nil)
// by discriminator. Types with no rows are reported as zero.
func (r *CalculationRepo) CountByType(ctx context.Context, userID uuid.UUID) (map[models.Type]int64, error) {
	var rows []struct {
		Type models.Type
		N    int64
	}
	q := Filter{UserID: userID}.apply(r.db.WithContext(ctx).Model(&models.Calculation{}))
	if err := q.Select("type, COUNT(*) AS n").Group("type").Scan(&rows).Error; err != nil {
		return nil, mapError(err, "calculations", userID)
	}

	counts := make(map[models.Type]int64, len(models.Types()))
	for _, t := range models.Types() {
		counts[t] = 0
	}
	for _, row := range rows {
		counts[row.Type] = row.N
	}
	return counts, nil
}

// Update persists the inputs and cached result of v. The store stamps
// updated_at; created_at is never touched.
func (r *CalculationRepo) Update(ctx context.Context, v models.Variant) error {
	c := v.Calc()
	now := r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&models.Calculation{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"inputs":     c.Inputs,
			"result":     c.Result,
			"updated_at": now,
		})
	if res.Error != nil {
		return mapError(res.Error, "calculation", c.ID)
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound, "calculation", c.ID)
	}
	c.UpdatedAt = now
	return nil
}

func (r *CalculationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Calculation{})
	if res.Error != nil {
		return mapError(res.Error, "calculation", id)
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound, "calculation", id)
	}
	return nil
}
