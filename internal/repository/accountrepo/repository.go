package accountrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/database"
	"stockkeeper/internal/pkg/logger"
)

// table descreve onde cada papel é persistido. Funcionários e administradores
// vivem em tabelas separadas com nomes de coluna próprios.
type table struct {
	name        string
	externalCol string
	secretCol   string
}

var tables = map[domain.Role]table{
	domain.RoleEmployee: {name: "employees", externalCol: "worker_id", secretCol: "passwd"},
	domain.RoleAdmin:    {name: "admins", externalCol: "admin_id", secretCol: "password"},
}

func tableFor(role domain.Role) (table, error) {
	t, ok := tables[role]
	if !ok {
		return table{}, apperror.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}
	return t, nil
}

// AccountRepository persiste funcionários e administradores em SQL.
type AccountRepository struct {
	DB        *sql.DB
	Dialect   database.Dialect
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewAccountRepository cria uma nova instância do AccountRepository, injetando o DB.
func NewAccountRepository(db *sql.DB, dialect database.Dialect, dbTimeout time.Duration, log logger.Logger) *AccountRepository {
	return &AccountRepository{
		DB:        db,
		Dialect:   dialect,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere uma nova conta na tabela do seu papel.
func (r *AccountRepository) Save(ctx context.Context, acc domain.Account) (domain.Account, error) {
	r.logger.Debug("Iniciando Save de conta no repositório.", map[string]interface{}{"username": acc.Username, "role": acc.Role})

	t, err := tableFor(acc.Role)
	if err != nil {
		return domain.Account{}, err
	}

	// 1. Configura Contexto com Timeout
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// 2. Prepara dados e ID
	acc.ID = uuid.NewString()
	acc.CreatedAt = time.Now().UTC()

	// 3. Executa o INSERT
	query := r.Dialect.Rebind(fmt.Sprintf(
		`INSERT INTO %s (id, %s, username, phone_number, %s, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.name, t.externalCol, t.secretCol,
	))
	_, err = r.DB.ExecContext(ctxTimeout, query, acc.ID, acc.ExternalID, acc.Username, acc.PhoneNumber, acc.PasswordHash, acc.CreatedAt)
	if err != nil {
		if r.Dialect.IsUniqueViolation(err) {
			r.logger.Info("Conta duplicada.", map[string]interface{}{"username": acc.Username, "role": acc.Role})
			return domain.Account{}, fmt.Errorf("%s: %w", acc.Username, domain.ErrDuplicateAccount)
		}
		r.logger.Error("Falha ao inserir conta no DB.", err)
		return domain.Account{}, apperror.NewDBError("Error saving account", err)
	}

	r.logger.Info("Conta salva com sucesso no repositório.", map[string]interface{}{"username": acc.Username, "role": acc.Role})
	return acc, nil
}

// FindByUsername busca uma conta pelo username na tabela do papel indicado.
func (r *AccountRepository) FindByUsername(ctx context.Context, role domain.Role, username string) (domain.Account, error) {
	t, err := tableFor(role)
	if err != nil {
		return domain.Account{}, err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.Dialect.Rebind(fmt.Sprintf(
		`SELECT id, %s, username, phone_number, %s, created_at FROM %s WHERE username = ?`,
		t.externalCol, t.secretCol, t.name,
	))

	acc := domain.Account{Role: role}
	err = r.DB.QueryRowContext(ctxTimeout, query, username).Scan(
		&acc.ID, &acc.ExternalID, &acc.Username, &acc.PhoneNumber, &acc.PasswordHash, &acc.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Conta não encontrada por username.", map[string]interface{}{"username": username, "role": role})
		return domain.Account{}, fmt.Errorf("%s: %w", username, domain.ErrAccountNotFound)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar conta por username no DB.", err)
		return domain.Account{}, apperror.NewDBError("Error accessing database", err)
	}
	return acc, nil
}

// ListByRole lista todas as contas de um papel, ordenadas por username.
func (r *AccountRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	t, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := fmt.Sprintf(
		`SELECT id, %s, username, phone_number, created_at FROM %s ORDER BY username`,
		t.externalCol, t.name,
	)
	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar contas no DB.", err)
		return nil, apperror.NewDBError("Error accessing database", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		acc := domain.Account{Role: role}
		if err := rows.Scan(&acc.ID, &acc.ExternalID, &acc.Username, &acc.PhoneNumber, &acc.CreatedAt); err != nil {
			return nil, apperror.NewDBError("Error reading accounts", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Error reading accounts", err)
	}
	return accounts, nil
}

// DeleteByUsername remove uma conta. Devolve domain.ErrAccountNotFound se nada foi removido.
func (r *AccountRepository) DeleteByUsername(ctx context.Context, role domain.Role, username string) error {
	t, err := tableFor(role)
	if err != nil {
		return err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.Dialect.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE username = ?`, t.name))
	result, err := r.DB.ExecContext(ctxTimeout, query, username)
	if err != nil {
		r.logger.Error("Falha ao remover conta.", err)
		return apperror.NewDBError("Error deleting account", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", username, domain.ErrAccountNotFound)
	}

	r.logger.Info("Conta removida.", map[string]interface{}{"username": username, "role": role})
	return nil
}
