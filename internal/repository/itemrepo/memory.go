package itemrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockkeeper/internal/domain"
)

// MemoryRepository é um catálogo em memória com a mesma semântica do
// ItemRepository SQL. Um mutex serializa cada read-modify-write.
// Usado com DB_DRIVER=memory e nos testes.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[domain.ItemKey]domain.Item
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[domain.ItemKey]domain.Item)}
}

func (m *MemoryRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return domain.Item{}, err
	}
	if item.Quantity < 0 {
		return domain.Item{}, domain.ErrNegativeQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := item.Key()
	if _, exists := m.items[key]; exists {
		return domain.Item{}, fmt.Errorf("%s: %w", key, domain.ErrDuplicateItem)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.Version = 1
	item.CreatedAt = now
	item.UpdatedAt = now
	m.items[key] = item
	return item, nil
}

func (m *MemoryRepository) FindByKey(ctx context.Context, key domain.ItemKey) (domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return domain.Item{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return domain.Item{}, fmt.Errorf("%s: %w", key, domain.ErrItemNotFound)
	}
	return item, nil
}

func (m *MemoryRepository) Exists(ctx context.Context, key domain.ItemKey) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.items[key]
	return ok, nil
}

func (m *MemoryRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]domain.Item, 0, len(m.items))
	for _, it := range m.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CompanyName != items[j].CompanyName {
			return items[i].CompanyName < items[j].CompanyName
		}
		return items[i].ItemName < items[j].ItemName
	})
	return items, nil
}

func (m *MemoryRepository) UpdateQuantity(ctx context.Context, key domain.ItemKey, fn domain.QuantityUpdate) (domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return domain.Item{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok {
		return domain.Item{}, fmt.Errorf("%s: %w", key, domain.ErrItemNotFound)
	}
	newQuantity, err := fn(item.Quantity)
	if err != nil {
		return domain.Item{}, err
	}
	if newQuantity < 0 {
		return domain.Item{}, fmt.Errorf("%s: %w", key, domain.ErrNegativeQuantity)
	}

	item.Quantity = newQuantity
	item.Version++
	item.UpdatedAt = time.Now().UTC()
	m.items[key] = item
	return item, nil
}

func (m *MemoryRepository) SetQuantity(ctx context.Context, key domain.ItemKey, quantity int) (domain.Item, error) {
	if quantity < 0 {
		return domain.Item{}, domain.ErrNegativeQuantity
	}
	return m.UpdateQuantity(ctx, key, func(int) (int, error) { return quantity, nil })
}

func (m *MemoryRepository) Delete(ctx context.Context, key domain.ItemKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[key]; !ok {
		return fmt.Errorf("%s: %w", key, domain.ErrItemNotFound)
	}
	delete(m.items, key)
	return nil
}

// Snapshot copia as quantidades atuais por chave.
func (m *MemoryRepository) Snapshot() map[domain.ItemKey]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[domain.ItemKey]int, len(m.items))
	for k, it := range m.items {
		out[k] = it.Quantity
	}
	return out
}
