package itemrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/cache"
	"stockkeeper/internal/pkg/database"
	"stockkeeper/internal/pkg/logger"
)

const itemColumns = "id, item_name, company_name, quantity, price_per_item, version, created_at, updated_at"

// ItemRepository é o Catálogo de Itens sobre SQL (PostgreSQL ou MySQL),
// com cache-aside em Redis para leituras por chave.
type ItemRepository struct {
	DB        *sql.DB
	Dialect   database.Dialect
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewItemRepository injeta as dependências de infraestrutura (DB, dialeto e cache).
func NewItemRepository(db *sql.DB, dialect database.Dialect, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ItemRepository {
	if cacheClient == nil {
		cacheClient = cache.NopClient{}
	}
	return &ItemRepository{
		DB:        db,
		Dialect:   dialect,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

func cacheKey(key domain.ItemKey) string {
	return fmt.Sprintf("item:%s:%s", url.QueryEscape(key.CompanyName), url.QueryEscape(key.ItemName))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (domain.Item, error) {
	var it domain.Item
	err := row.Scan(&it.ID, &it.ItemName, &it.CompanyName, &it.Quantity, &it.PricePerItem, &it.Version, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// Create persiste um novo item. Falha com domain.ErrDuplicateItem se a
// chave (item_name, company_name) já existir.
func (r *ItemRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	r.logger.Debug("Inserindo item no catálogo.", map[string]interface{}{"item_name": item.ItemName, "company_name": item.CompanyName})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if item.Quantity < 0 {
		return domain.Item{}, domain.ErrNegativeQuantity
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.Version = 1
	item.CreatedAt = now
	item.UpdatedAt = now

	query := r.Dialect.Rebind(`
        INSERT INTO items (` + itemColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.DB.ExecContext(ctxTimeout, query,
		item.ID, item.ItemName, item.CompanyName, item.Quantity, item.PricePerItem, item.Version, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if r.Dialect.IsUniqueViolation(err) {
			r.logger.Info("Item duplicado.", map[string]interface{}{"item_name": item.ItemName, "company_name": item.CompanyName})
			return domain.Item{}, fmt.Errorf("%s: %w", item.Key(), domain.ErrDuplicateItem)
		}
		r.logger.Error("Falha ao inserir item no DB.", err)
		return domain.Item{}, apperror.NewDBError("Error saving item", err)
	}

	return item, nil
}

// FindByKey busca um item pela chave composta, com estratégia Cache-Aside.
func (r *ItemRepository) FindByKey(ctx context.Context, key domain.ItemKey) (domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	ck := cacheKey(key)
	var item domain.Item

	// 1. Cache (Redis)
	cached, err := r.Cache.Get(ctxTimeout, ck)
	if err == nil {
		if json.Unmarshal([]byte(cached), &item) == nil {
			return item, nil
		}
		r.logger.Warn("Entrada de cache corrompida, lendo do DB.", map[string]interface{}{"key": ck})
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Falha ao ler do cache, lendo do DB.", map[string]interface{}{"key": ck, "error": err.Error()})
	}

	// 2. Banco de Dados
	query := r.Dialect.Rebind(`SELECT ` + itemColumns + ` FROM items WHERE item_name = ? AND company_name = ?`)
	item, err = scanItem(r.DB.QueryRowContext(ctxTimeout, query, key.ItemName, key.CompanyName))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, fmt.Errorf("%s: %w", key, domain.ErrItemNotFound)
	}
	if err != nil {
		r.logger.Error("Falha ao buscar item no DB.", err)
		return domain.Item{}, apperror.NewDBError("Error accessing database", err)
	}

	// 3. Popula o cache para as próximas leituras
	if payload, marshalErr := json.Marshal(item); marshalErr == nil {
		if setErr := r.Cache.Set(ctxTimeout, ck, payload, r.CacheTTL); setErr != nil {
			r.logger.Warn("Falha ao gravar item no cache.", map[string]interface{}{"key": ck, "error": setErr.Error()})
		}
	}

	return item, nil
}

// Exists confere a chave direto no banco, sem passar pelo cache. É a leitura
// usada pela pré-verificação de lotes: uma entrada de cache que sobreviveu a
// um DELETE não pode aprovar um lote.
func (r *ItemRepository) Exists(ctx context.Context, key domain.ItemKey) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var one int
	query := r.Dialect.Rebind(`SELECT 1 FROM items WHERE item_name = ? AND company_name = ?`)
	err := r.DB.QueryRowContext(ctxTimeout, query, key.ItemName, key.CompanyName).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Falha ao verificar existência do item.", err)
		return false, apperror.NewDBError("Error accessing database", err)
	}
	return true, nil
}

// FindAll lista todo o catálogo ordenado por empresa e nome.
func (r *ItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+itemColumns+` FROM items ORDER BY company_name, item_name`)
	if err != nil {
		r.logger.Error("Falha ao listar itens no DB.", err)
		return nil, apperror.NewDBError("Error accessing database", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, apperror.NewDBError("Error reading items", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Error reading items", err)
	}
	return items, nil
}

// UpdateQuantity executa o read-modify-write de um único item dentro de uma
// transação própria: a linha é bloqueada com FOR UPDATE, fn decide a nova
// quantidade e o UPDATE confere a versão lida (OCC). Um erro de fn cancela a
// escrita e é devolvido sem alteração.
func (r *ItemRepository) UpdateQuantity(ctx context.Context, key domain.ItemKey, fn domain.QuantityUpdate) (domain.Item, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de estoque.", err)
		return domain.Item{}, apperror.NewDBError("Error starting transaction", err)
	}
	defer tx.Rollback() // no-op após Commit

	// 1. Leitura atual com lock de linha
	selectSQL := r.Dialect.Rebind(`SELECT ` + itemColumns + ` FROM items WHERE item_name = ? AND company_name = ? FOR UPDATE`)
	current, err := scanItem(tx.QueryRowContext(ctxTimeout, selectSQL, key.ItemName, key.CompanyName))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, fmt.Errorf("%s: %w", key, domain.ErrItemNotFound)
	}
	if err != nil {
		r.logger.Error("Falha ao bloquear item para atualização.", err)
		return domain.Item{}, apperror.NewDBError("Error accessing database", err)
	}

	// 2. Regra de negócio (fora do repositório)
	newQuantity, err := fn(current.Quantity)
	if err != nil {
		return domain.Item{}, err
	}
	if newQuantity < 0 {
		return domain.Item{}, fmt.Errorf("%s: %w", key, domain.ErrNegativeQuantity)
	}

	// 3. Escrita com OCC
	now := time.Now().UTC()
	updateSQL := r.Dialect.Rebind(`
        UPDATE items
        SET quantity = ?, version = ?, updated_at = ?
        WHERE item_name = ? AND company_name = ? AND version = ?`)
	result, err := tx.ExecContext(ctxTimeout, updateSQL,
		newQuantity, current.Version+1, now, key.ItemName, key.CompanyName, current.Version,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar quantidade.", err)
		return domain.Item{}, apperror.NewDBError("Error updating inventory", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Item{}, apperror.NewDBError("Error updating inventory", err)
	}
	if affected == 0 {
		r.logger.Warn("Versão do item desatualizada (OCC).", map[string]interface{}{"item_name": key.ItemName, "company_name": key.CompanyName, "expected_version": current.Version})
		return domain.Item{}, fmt.Errorf("%s: %w", key, domain.ErrVersionConflict)
	}

	// 4. Commit
	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar atualização de estoque.", err)
		return domain.Item{}, apperror.NewDBError("Error committing inventory update", err)
	}

	r.invalidate(ctx, key)

	current.Quantity = newQuantity
	current.Version++
	current.UpdatedAt = now
	r.logger.Debug("Quantidade atualizada.", map[string]interface{}{"item_name": key.ItemName, "company_name": key.CompanyName, "new_quantity": newQuantity, "new_version": current.Version})
	return current, nil
}

// SetQuantity sobrescreve a quantidade de um item. Valores negativos são recusados.
func (r *ItemRepository) SetQuantity(ctx context.Context, key domain.ItemKey, quantity int) (domain.Item, error) {
	if quantity < 0 {
		return domain.Item{}, domain.ErrNegativeQuantity
	}
	return r.UpdateQuantity(ctx, key, func(int) (int, error) { return quantity, nil })
}

// Delete remove um item do catálogo.
func (r *ItemRepository) Delete(ctx context.Context, key domain.ItemKey) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := r.Dialect.Rebind(`DELETE FROM items WHERE item_name = ? AND company_name = ?`)
	result, err := r.DB.ExecContext(ctxTimeout, query, key.ItemName, key.CompanyName)
	if err != nil {
		r.logger.Error("Falha ao remover item.", err)
		return apperror.NewDBError("Error deleting item", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", key, domain.ErrItemNotFound)
	}

	r.invalidate(ctx, key)
	return nil
}

// invalidate apaga a entrada em cache; falhas só geram aviso (TTL cobre o resto).
func (r *ItemRepository) invalidate(ctx context.Context, key domain.ItemKey) {
	if err := r.Cache.Delete(ctx, cacheKey(key)); err != nil {
		r.logger.Warn("Falha ao invalidar cache do item.", map[string]interface{}{"key": cacheKey(key), "error": err.Error()})
	}
}
