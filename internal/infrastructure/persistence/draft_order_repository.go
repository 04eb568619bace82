package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// GormDraftOrderRepository implements DraftOrderRepository using GORM
type GormDraftOrderRepository struct {
	db *gorm.DB
}

// NewGormDraftOrderRepository creates a new GormDraftOrderRepository
func NewGormDraftOrderRepository(db *gorm.DB) *GormDraftOrderRepository {
	return &GormDraftOrderRepository{db: db}
}

// FindByID finds a draft order by ID, lines included
func (r *GormDraftOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.DraftOrder, error) {
	var draft order.DraftOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&draft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &draft, nil
}

// Save creates or updates a draft order with its lines
func (r *GormDraftOrderRepository) Save(ctx context.Context, draft *order.DraftOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(draft).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(draft.Lines))
		for i, line := range draft.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("draft_id = ? AND id NOT IN ?", draft.ID, currentLineIDs).
				Delete(&order.DraftLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("draft_id = ?", draft.ID).
				Delete(&order.DraftLine{}).Error; err != nil {
				return err
			}
		}

		for i := range draft.Lines {
			if err := tx.Save(&draft.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a draft order and its lines
func (r *GormDraftOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("draft_id = ?", id).Delete(&order.DraftLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&order.DraftOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteExpired removes open drafts whose expiry has passed, returning
// how many were removed. Confirmed drafts are kept for traceability.
func (r *GormDraftOrderRepository) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expiredIDs []uuid.UUID
		if err := tx.Model(&order.DraftOrder{}).
			Where("status = ? AND expires_at < ?", order.DraftStatusOpen, time.Now()).
			Pluck("id", &expiredIDs).Error; err != nil {
			return err
		}
		if len(expiredIDs) == 0 {
			return nil
		}

		if err := tx.Where("draft_id IN ?", expiredIDs).Delete(&order.DraftLine{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", expiredIDs).Delete(&order.DraftOrder{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	return removed, err
}

// Ensure GormDraftOrderRepository implements DraftOrderRepository
var _ order.DraftOrderRepository = (*GormDraftOrderRepository)(nil)
