package accountrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockkeeper/internal/domain"
)

// MemoryRepository guarda contas em memória (DB_DRIVER=memory e testes).
// Username e ExternalID são únicos por papel, como nas tabelas SQL.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[domain.Role]map[string]domain.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: map[domain.Role]map[string]domain.Account{
		domain.RoleEmployee: {},
		domain.RoleAdmin:    {},
	}}
}

func (m *MemoryRepository) bucket(role domain.Role) (map[string]domain.Account, error) {
	b, ok := m.accounts[role]
	if !ok {
		_, err := tableFor(role)
		return nil, err
	}
	return b, nil
}

func (m *MemoryRepository) Save(ctx context.Context, acc domain.Account) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := m.bucket(acc.Role)
	if err != nil {
		return domain.Account{}, err
	}
	for _, existing := range b {
		if existing.Username == acc.Username || existing.ExternalID == acc.ExternalID {
			return domain.Account{}, fmt.Errorf("%s: %w", acc.Username, domain.ErrDuplicateAccount)
		}
	}

	acc.ID = uuid.NewString()
	acc.CreatedAt = time.Now().UTC()
	b[acc.Username] = acc
	return acc, nil
}

func (m *MemoryRepository) FindByUsername(ctx context.Context, role domain.Role, username string) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	b, err := m.bucket(role)
	if err != nil {
		return domain.Account{}, err
	}
	acc, ok := b[username]
	if !ok {
		return domain.Account{}, fmt.Errorf("%s: %w", username, domain.ErrAccountNotFound)
	}
	return acc, nil
}

func (m *MemoryRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	b, err := m.bucket(role)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(b))
	for _, acc := range b {
		acc.PasswordHash = ""
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *MemoryRepository) DeleteByUsername(ctx context.Context, role domain.Role, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := m.bucket(role)
	if err != nil {
		return err
	}
	if _, ok := b[username]; !ok {
		return fmt.Errorf("%s: %w", username, domain.ErrAccountNotFound)
	}
	delete(b, username)
	return nil
}
