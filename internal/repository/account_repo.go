package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jumparena/internal/domain"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByLogin(ctx context.Context, login string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateClientAccount registers a client together with its login in one
// transaction.
func (r *AccountRepository) CreateClientAccount(ctx context.Context, client *domain.Client, account *domain.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(client).Error; err != nil {
			return err
		}
		account.ClientID = &client.ID
		return tx.Create(account).Error
	})
}
