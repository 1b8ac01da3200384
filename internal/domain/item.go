package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Erros sentinela do catálogo. Repositórios os embrulham com %w;
// serviços os traduzem para apperror na borda.
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrDuplicateItem     = errors.New("item already exists")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrVersionConflict   = errors.New("item was modified concurrently")
)

// Limites das colunas de items: quantity INTEGER e price_per_item NUMERIC(12,2).
const (
	MaxQuantity        = math.MaxInt32
	PriceScale         = 2
	PriceIntegerDigits = 10
)

// MaxPricePerItem é o maior preço representável (9999999999.99).
var MaxPricePerItem = decimal.New(1, PriceIntegerDigits).Sub(decimal.New(1, -PriceScale))

// ItemKey é a chave composta (item_name, company_name) que identifica um item.
type ItemKey struct {
	ItemName    string `json:"item_name"`
	CompanyName string `json:"company_name"`
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s@%s", k.ItemName, k.CompanyName)
}

// Item representa uma entrada do catálogo de inventário.
// Invariante: Quantity >= 0 em todo momento.
type Item struct {
	ID           string          `json:"id"`
	ItemName     string          `json:"item_name"`
	CompanyName  string          `json:"company_name"`
	Quantity     int             `json:"quantity"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Version      int             `json:"-"` // Controle de Concorrência Otimista (OCC)
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Key devolve a chave composta do item.
func (i Item) Key() ItemKey {
	return ItemKey{ItemName: i.ItemName, CompanyName: i.CompanyName}
}

// ItemRegistration é o payload de entrada de POST /item_register.
// Os campos chegam como texto (JSON ou formulário) e são convertidos no serviço.
type ItemRegistration struct {
	ItemName     FlexString `json:"item_name" validate:"required"`
	CompanyName  FlexString `json:"company_name" validate:"required"`
	Quantity     FlexString `json:"quantity" validate:"required"`
	PricePerItem FlexString `json:"price_per_item" validate:"required"`
}

// QuantityUpdate decide a nova quantidade a partir da atual, ou devolve um
// erro de negócio que cancela a escrita. Executada sob o lock da linha.
type QuantityUpdate func(current int) (int, error)
