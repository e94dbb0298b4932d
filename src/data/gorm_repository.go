package data

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jiaming2012/banking-services/src/models"
)

// GormRepository is the persistent-store implementation of Repository. The id
// column is the public entity identifier (account_id, customer_id, card_id),
// not the surrogate primary key.
type GormRepository[T any] struct {
	db       *gorm.DB
	idColumn string
}

func NewGormRepository[T any](db *gorm.DB, idColumn string) *GormRepository[T] {
	return &GormRepository[T]{
		db:       db,
		idColumn: idColumn,
	}
}

func (r *GormRepository[T]) Save(ctx context.Context, entity T) (T, error) {
	if err := r.db.WithContext(ctx).Save(&entity).Error; err != nil {
		return entity, fmt.Errorf("GormRepository.Save: %w", err)
	}

	return entity, nil
}

func (r *GormRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	var entity T

	err := r.db.WithContext(ctx).Where(fmt.Sprintf("%s = ?", r.idColumn), id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity, models.ErrRecordNotFound
		}

		return entity, fmt.Errorf("GormRepository.FindByID: %w", err)
	}

	return entity, nil
}

func (r *GormRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	var entities []T

	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("GormRepository.FindAll: %w", err)
	}

	return entities, nil
}

func (r *GormRepository[T]) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(new(T)).Where(fmt.Sprintf("%s = ?", r.idColumn), id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("GormRepository.ExistsByID: %w", err)
	}

	return count > 0, nil
}

func (r *GormRepository[T]) DeleteByID(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where(fmt.Sprintf("%s = ?", r.idColumn), id).Delete(new(T)).Error; err != nil {
		return fmt.Errorf("GormRepository.DeleteByID: %w", err)
	}

	return nil
}

func (r *GormRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("GormRepository.Count: %w", err)
	}

	return count, nil
}

// NewAccountRepository returns the traced account store used by the onboarding
// workflow.
func NewAccountRepository(db *gorm.DB) *TracedRepository[models.Account] {
	return NewTracedRepository[models.Account](NewGormRepository[models.Account](db, "account_id"), "account")
}

func NewCustomerRepository(db *gorm.DB) *TracedRepository[models.Customer] {
	return NewTracedRepository[models.Customer](NewGormRepository[models.Customer](db, "customer_id"), "customer")
}

func NewCardRepository(db *gorm.DB) *TracedRepository[models.Card] {
	return NewTracedRepository[models.Card](NewGormRepository[models.Card](db, "card_id"), "card")
}
