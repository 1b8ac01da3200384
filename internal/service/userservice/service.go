package userservice

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/logger"
)

// Mensagens devolvidas pelas rotas de contas.
const (
	MsgMissingFields       = "Missing fields"
	MsgPasswordMismatch    = "Passwords do not match"
	MsgDuplicateAccount    = "Username or ID already registered"
	MsgMissingCredentials  = "Missing username or password"
	MsgCredentialsRequired = "Username and password are required"
	MsgUsernameNotFound    = "Username not found"
	MsgInvalidPassword     = "Invalid password"
	MsgNoEmployeesFound    = "No employees found"
	MsgMissingUsername     = "Missing username"

	MsgUserRegistered  = "User registered successfully"
	MsgAdminRegistered = "Admin registered successfully"
	MsgLoginOK         = "Login successful"
	MsgAdminLoginOK    = "Admin-login successful"
	MsgUserExists      = "User exists and password matches"
	MsgEmployeesListed = "Employees retrieved successfully"
	MsgEmployeeDeleted = "Deleted successfully"
)

// AccountRepository define o contrato de persistência de contas.
type AccountRepository interface {
	Save(ctx context.Context, acc domain.Account) (domain.Account, error)
	FindByUsername(ctx context.Context, role domain.Role, username string) (domain.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	DeleteByUsername(ctx context.Context, role domain.Role, username string) error
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(acc domain.Account) (string, error)
}

// UserService implementa cadastro, login e administração de contas.
type UserService struct {
	repo       AccountRepository
	tokens     TokenService
	logger     logger.Logger
	bcryptCost int
}

// NewService cria uma nova instância do UserService.
func NewService(repo AccountRepository, tokens TokenService, log logger.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, logger: log, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost troca o custo do bcrypt (testes usam bcrypt.MinCost).
func (s *UserService) WithBcryptCost(cost int) *UserService {
	s.bcryptCost = cost
	return s
}

// Register cadastra um funcionário (worker_id/passwd) ou administrador
// (admin_id/password). A senha é guardada como hash bcrypt.
func (s *UserService) Register(ctx context.Context, role domain.Role, reg domain.Registration) (domain.Account, error) {
	// 1. Campos por papel
	externalID, secret := reg.WorkerID.Trimmed(), string(reg.Passwd)
	if role == domain.RoleAdmin {
		externalID, secret = reg.AdminID.Trimmed(), string(reg.Password)
	}
	username, phone := reg.Username.Trimmed(), reg.PhoneNumber.Trimmed()
	confirm := string(reg.ConfirmPassword)

	if externalID == "" || username == "" || phone == "" || secret == "" || confirm == "" {
		return domain.Account{}, apperror.NewValidationError(MsgMissingFields)
	}
	if secret != confirm {
		return domain.Account{}, apperror.NewValidationError(MsgPasswordMismatch)
	}

	// 2. Hashing da Senha
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.bcryptCost)
	if err != nil {
		return domain.Account{}, apperror.NewInternalError("Failed to hash password", err)
	}

	// 3. Persistência
	acc, err := s.repo.Save(ctx, domain.Account{
		ExternalID:   externalID,
		Username:     username,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return domain.Account{}, apperror.NewConflictError(MsgDuplicateAccount)
		}
		return domain.Account{}, err
	}

	s.logger.Info("Conta cadastrada.", map[string]interface{}{"username": acc.Username, "role": acc.Role})
	return acc, nil
}

// Login autentica a conta e emite um JWT.
func (s *UserService) Login(ctx context.Context, role domain.Role, creds domain.Credentials) (domain.LoginResult, error) {
	acc, err := s.authenticate(ctx, role, creds.Username.Trimmed(), creds.Secret(), MsgMissingCredentials)
	if err != nil {
		return domain.LoginResult{}, err
	}

	signed, err := s.tokens.GenerateToken(acc)
	if err != nil {
		return domain.LoginResult{}, apperror.NewInternalError("Failed to generate token", err)
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"username": acc.Username, "role": acc.Role})
	return domain.LoginResult{Account: acc, Token: signed}, nil
}

// CheckUserExists confere username e senha de um funcionário sem emitir token.
func (s *UserService) CheckUserExists(ctx context.Context, username, password string) error {
	_, err := s.authenticate(ctx, domain.RoleEmployee, username, password, MsgCredentialsRequired)
	return err
}

func (s *UserService) authenticate(ctx context.Context, role domain.Role, username, password, missingMsg string) (domain.Account, error) {
	if username == "" || password == "" {
		return domain.Account{}, apperror.NewValidationError(missingMsg)
	}

	acc, err := s.repo.FindByUsername(ctx, role, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, apperror.NewNotFoundError(MsgUsernameNotFound)
		}
		return domain.Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Senha inválida.", map[string]interface{}{"username": username, "role": role})
		return domain.Account{}, apperror.NewValidationError(MsgInvalidPassword)
	}
	return acc, nil
}

// ListEmployees devolve os funcionários sem hashes. Lista vazia é 404.
func (s *UserService) ListEmployees(ctx context.Context) ([]domain.EmployeeView, error) {
	accounts, err := s.repo.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperror.NewNotFoundError(MsgNoEmployeesFound)
	}

	views := make([]domain.EmployeeView, len(accounts))
	for i, acc := range accounts {
		views[i] = domain.EmployeeView{WorkerID: acc.ExternalID, Username: acc.Username, PhoneNumber: acc.PhoneNumber}
	}
	return views, nil
}

// DeleteEmployee remove um funcionário pelo username.
func (s *UserService) DeleteEmployee(ctx context.Context, username string) error {
	if username == "" {
		return apperror.NewValidationError(MsgMissingUsername)
	}

	if err := s.repo.DeleteByUsername(ctx, domain.RoleEmployee, username); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return apperror.NewNotFoundError(MsgUsernameNotFound)
		}
		return err
	}

	s.logger.Info("Funcionário removido.", map[string]interface{}{"username": username})
	return nil
}
