package repository

import (
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/shopspring/decimal"
)

type CustomerEntity struct {
	ID            int64           `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	FullName      string          `db:"full_name"      gorm:"column:full_name;not null"`
	Username      string          `db:"username"       gorm:"column:username;not null;unique"`
	Password      string          `db:"password"       gorm:"column:password;not null"`
	Age           int             `db:"age"            gorm:"column:age;not null"`
	Address       *string         `db:"address"        gorm:"column:address"`
	Gender        *string         `db:"gender"         gorm:"column:gender"`
	MaritalStatus *string         `db:"marital_status" gorm:"column:marital_status"`
	WalletBalance decimal.Decimal `db:"wallet_balance" gorm:"column:wallet_balance;type:numeric;not null;default:0"`
	Role          string          `db:"role"           gorm:"column:role;not null;default:customer"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:            m.ID,
		FullName:      m.FullName,
		Username:      m.Username,
		Password:      m.Password,
		Age:           m.Age,
		Address:       m.Address,
		Gender:        m.Gender,
		MaritalStatus: m.MaritalStatus,
		WalletBalance: m.WalletBalance,
		Role:          string(m.Role),
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:            e.ID,
		FullName:      e.FullName,
		Username:      e.Username,
		Password:      e.Password,
		Age:           e.Age,
		Address:       e.Address,
		Gender:        e.Gender,
		MaritalStatus: e.MaritalStatus,
		WalletBalance: e.WalletBalance,
		Role:          model.Role(e.Role),
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}
