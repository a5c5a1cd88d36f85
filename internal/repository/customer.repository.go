package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/pg"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	var count int64
	if err := r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("username = ?", c.Username).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		// The pre-check races with concurrent registrations; the unique
		// index is the real guard, so translate its violation too.
		if isDuplicateKeyErr(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return toCustomerModel(entity), nil
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *CustomerRepository) GetByUsername(ctx context.Context, username string) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("username = ?", username).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	if err := r.Read(ctx).WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

// Update applies the given allow-listed column set. Returns false when
// no row matched the username.
func (r *CustomerRepository) Update(ctx context.Context, username string, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		var count int64
		if err := r.Read(ctx).WithContext(ctx).
			Model(&CustomerEntity{}).
			Where("username = ?", username).
			Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}

	result := r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("username = ?", username).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, username string) (bool, error) {
	result := r.Write(ctx).WithContext(ctx).
		Where("username = ?", username).
		Delete(&CustomerEntity{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ChargeWallet adds amount to the wallet in a single atomic update so
// concurrent charges never lose increments. Returns false when the
// username does not exist.
func (r *CustomerRepository) ChargeWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("username = ?", username).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeductWallet subtracts amount only when the balance covers it,
// expressed as one conditional update so two concurrent deductions can
// never both succeed against a balance that only covers one. The false
// return does not distinguish an unknown customer from an insufficient
// balance; callers rely on that boolean contract.
func (r *CustomerRepository) DeductWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error) {
	result := r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("username = ? AND wallet_balance >= ?", username, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CustomerRepository) GetWalletBalance(ctx context.Context, username string) (decimal.Decimal, error) {
	var entity CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Select("wallet_balance").
		Where("username = ?", username).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrCustomerNotFound
		}
		return decimal.Zero, err
	}
	return entity.WalletBalance, nil
}
