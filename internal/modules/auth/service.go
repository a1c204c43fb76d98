package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"jumparena/internal/domain"
	"jumparena/internal/repository"
)

type jwtService interface {
	GenerateToken(accountID int64, role string, clientID, employeeID int64) (string, error)
}

type accountRepo interface {
	GetByLogin(ctx context.Context, login string) (*domain.Account, error)
	CreateClientAccount(ctx context.Context, client *domain.Client, account *domain.Account) error
}

type Service struct {
	accounts accountRepo
	jwt      jwtService
}

func NewService(accounts accountRepo, jwt jwtService) *Service {
	return &Service{accounts: accounts, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	login := strings.TrimSpace(req.Login)
	if login == "" || req.Password == "" {
		return nil, ErrValidation
	}

	account, err := s.accounts.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	var clientID, employeeID int64
	if account.ClientID != nil {
		clientID = *account.ClientID
	}
	if account.EmployeeID != nil {
		employeeID = *account.EmployeeID
	}

	token, err := s.jwt.GenerateToken(account.ID, string(account.Role), clientID, employeeID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, Account: account}, nil
}

// RegisterClient creates a client profile and its login in one step. The new
// account always gets the client role.
func (s *Service) RegisterClient(ctx context.Context, req RegisterClientRequest) (*LoginResponse, error) {
	login := strings.TrimSpace(req.Login)
	if login == "" || len(req.Password) < 6 || strings.TrimSpace(req.FullName) == "" {
		return nil, ErrValidation
	}

	if _, err := s.accounts.GetByLogin(ctx, login); err == nil {
		return nil, ErrLoginTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	client := &domain.Client{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    req.Phone,
		Email:    req.Email,
		Status:   domain.ClientActive,
	}
	account := &domain.Account{
		Login:        login,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
	}

	if err := s.accounts.CreateClientAccount(ctx, client, account); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(account.ID, string(account.Role), client.ID, 0)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, Account: account}, nil
}
