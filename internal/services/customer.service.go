package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/model"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/internal/repository"
	"github.com/shopspring/decimal"
)

var (
	ErrCustomerNotFound = errors.New("Customer not found")
	ErrUsernameTaken    = errors.New("Username already exists")
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrNegativeAmount     = errors.New("Amount cannot be negative")
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	GetByUsername(ctx context.Context, username string) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
	Update(ctx context.Context, username string, fields map[string]any) (bool, error)
	Delete(ctx context.Context, username string) (bool, error)
	ChargeWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error)
	DeductWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error)
}

type TokenIssuer interface {
	Issue(subjectID int64) (string, error)
}

// CustomerService owns customer records and all wallet balance
// mutations.
type CustomerService struct {
	customerRepo CustomerRepository
	tokens       TokenIssuer
}

func NewCustomerService(customerRepo CustomerRepository, tokens TokenIssuer) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		tokens:       tokens,
	}
}

func (s *CustomerService) Register(ctx context.Context, req model.CustomerCreateRequest) (*model.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	role := model.RoleCustomer
	if req.Role != nil {
		role = *req.Role
	}

	c := &model.Customer{
		FullName:      *req.FullName,
		Username:      *req.Username,
		Password:      *req.Password, // stored verbatim, matching the source system
		Age:           *req.Age,
		Address:       req.Address,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
		WalletBalance: decimal.Zero,
		Role:          role,
	}

	created, err := s.customerRepo.Create(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}

// Login compares the password verbatim and issues a token on match.
// Every failure collapses into ErrInvalidCredentials.
func (s *CustomerService) Login(ctx context.Context, username, password string) (string, error) {
	c, err := s.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login lookup: %w", err)
	}
	if c.Password != password {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(c.ID)
}

func (s *CustomerService) GetByUsername(ctx context.Context, username string) (*model.Customer, error) {
	c, err := s.customerRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *CustomerService) Update(ctx context.Context, username string, req model.CustomerUpdateRequest) (bool, error) {
	if req.WalletBalance != nil && req.WalletBalance.IsNegative() {
		return false, ErrNegativeAmount
	}
	return s.customerRepo.Update(ctx, username, req.Fields())
}

func (s *CustomerService) Delete(ctx context.Context, username string) (bool, error) {
	return s.customerRepo.Delete(ctx, username)
}

// ChargeWallet adds amount to the wallet. Negative amounts are rejected
// at this boundary before any write happens.
func (s *CustomerService) ChargeWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error) {
	if amount.IsNegative() {
		return false, ErrNegativeAmount
	}
	return s.customerRepo.ChargeWallet(ctx, username, amount)
}

// DeductWallet subtracts amount when the balance covers it. The boolean
// result does not distinguish an unknown customer from insufficient
// funds; that contract is load-bearing for callers.
func (s *CustomerService) DeductWallet(ctx context.Context, username string, amount decimal.Decimal) (bool, error) {
	if amount.IsNegative() {
		return false, ErrNegativeAmount
	}
	return s.customerRepo.DeductWallet(ctx, username, amount)
}
