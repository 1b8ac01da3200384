package itemrepo

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockkeeper/internal/domain"
	"stockkeeper/internal/pkg/cache"
	"stockkeeper/internal/pkg/database"
	"stockkeeper/internal/pkg/logger"
)

// catalog é o contrato comum aos dois repositórios exercitado pelos testes.
type catalog interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	FindByKey(ctx context.Context, key domain.ItemKey) (domain.Item, error)
	Exists(ctx context.Context, key domain.ItemKey) (bool, error)
	FindAll(ctx context.Context) ([]domain.Item, error)
	UpdateQuantity(ctx context.Context, key domain.ItemKey, fn domain.QuantityUpdate) (domain.Item, error)
	SetQuantity(ctx context.Context, key domain.ItemKey, quantity int) (domain.Item, error)
	Delete(ctx context.Context, key domain.ItemKey) error
}

var widget = domain.ItemKey{ItemName: "Widget", CompanyName: "Acme"}

func newWidget() domain.Item {
	return domain.Item{
		ItemName:     widget.ItemName,
		CompanyName:  widget.CompanyName,
		Quantity:     10,
		PricePerItem: decimal.RequireFromString("2.50"),
	}
}

func runCatalogContract(t *testing.T, newRepo func(t *testing.T) catalog) {
	ctx := context.Background()

	t.Run("create and duplicate key", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, newWidget())
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		_, err = repo.Create(ctx, newWidget())
		assert.ErrorIs(t, err, domain.ErrDuplicateItem)
	})

	t.Run("find by key", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.FindByKey(ctx, widget)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
		exists, err := repo.Exists(ctx, widget)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = repo.Create(ctx, newWidget())
		require.NoError(t, err)

		got, err := repo.FindByKey(ctx, widget)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Quantity)
		assert.True(t, decimal.RequireFromString("2.5").Equal(got.PricePerItem))
	})

	t.Run("update quantity commits fn result", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newWidget())
		require.NoError(t, err)

		updated, err := repo.UpdateQuantity(ctx, widget, func(cur int) (int, error) { return cur + 5, nil })
		require.NoError(t, err)
		assert.Equal(t, 15, updated.Quantity)

		got, err := repo.FindByKey(ctx, widget)
		require.NoError(t, err)
		assert.Equal(t, 15, got.Quantity)
	})

	t.Run("fn error leaves quantity unchanged", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newWidget())
		require.NoError(t, err)

		_, err = repo.UpdateQuantity(ctx, widget, func(int) (int, error) { return 0, domain.ErrInsufficientStock })
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		_, err = repo.UpdateQuantity(ctx, widget, func(cur int) (int, error) { return cur - 11, nil })
		assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

		got, err := repo.FindByKey(ctx, widget)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Quantity)
	})

	t.Run("set quantity rejects negatives", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newWidget())
		require.NoError(t, err)

		_, err = repo.SetQuantity(ctx, widget, -1)
		assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

		got, err := repo.SetQuantity(ctx, widget, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Quantity)
	})

	t.Run("missing key on update", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.UpdateQuantity(ctx, widget, func(cur int) (int, error) { return cur + 1, nil })
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("concurrent adds do not lose updates", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newWidget())
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.UpdateQuantity(ctx, widget, func(cur int) (int, error) { return cur + 1, nil })
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repo.FindByKey(ctx, widget)
		require.NoError(t, err)
		assert.Equal(t, 30, got.Quantity)
	})

	t.Run("list and delete", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, newWidget())
		require.NoError(t, err)
		gadget := newWidget()
		gadget.ItemName = "Gadget"
		_, err = repo.Create(ctx, gadget)
		require.NoError(t, err)

		items, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Gadget", items[0].ItemName)

		exists, err := repo.Exists(ctx, widget)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.Delete(ctx, widget))
		assert.ErrorIs(t, repo.Delete(ctx, widget), domain.ErrItemNotFound)
		exists, err = repo.Exists(ctx, widget)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestMemoryRepository(t *testing.T) {
	runCatalogContract(t, func(t *testing.T) catalog { return NewMemoryRepository() })
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByKey(ctx, widget)
	assert.True(t, errors.Is(err, context.Canceled))
}

// TestItemRepository_SQL roda o mesmo contrato contra um banco real.
// Ex.: TEST_DB_DRIVER=postgres TEST_DATABASE_URL=postgres://... go test ./...
func TestItemRepository_SQL(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL não definido")
	}
	driver := os.Getenv("TEST_DB_DRIVER")
	if driver == "" {
		driver = "postgres"
	}

	db, dialect, err := database.Open(driver, dsn)
	if err != nil {
		t.Skipf("banco indisponível: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, dialect))

	runCatalogContract(t, func(t *testing.T) catalog {
		resetItems(t, db)
		return NewItemRepository(db, dialect, cache.NopClient{}, 5*time.Second, time.Minute, logger.NewNop())
	})
}

func resetItems(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`DELETE FROM items`)
	require.NoError(t, err)
}

type stubCache struct {
	cache.NopClient
	values map[string]string
}

func (s stubCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return "", cache.ErrCacheMiss
}

func TestItemRepository_FindByKey_CacheHit(t *testing.T) {
	c := stubCache{values: map[string]string{
		cacheKey(widget): `{"id":"1","item_name":"Widget","company_name":"Acme","quantity":7,"price_per_item":"2.5"}`,
	}}
	// Sem DB: um acerto de cache não pode tocar o banco.
	repo := NewItemRepository(nil, database.Postgres, c, time.Second, time.Minute, logger.NewNop())

	got, err := repo.FindByKey(context.Background(), widget)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
}

func TestCacheKey_EscapesSeparators(t *testing.T) {
	a := cacheKey(domain.ItemKey{ItemName: "b", CompanyName: "a:x"})
	b := cacheKey(domain.ItemKey{ItemName: "x:b", CompanyName: "a"})
	assert.NotEqual(t, a, b)
}
