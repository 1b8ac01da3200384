package itemservice

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/logger"
)

// Mensagens devolvidas pelas rotas de catálogo.
const (
	MsgMissingFields   = "Missing fields"
	MsgInvalidQuantity = "Quantity must be a non-negative integer"
	MsgInvalidPrice    = "Price per item must be a non-negative number"
	MsgDuplicateItem   = "Item already exists. Please go to the update panel."
	MsgRegistered      = "Product registered successfully"
	MsgItemsRetrieved  = "items retrieved successfully"
	MsgNoItemsFound    = "No items found"
	MsgItemDeleted     = "Item deleted successfully"
	MsgItemNotFound    = "Item not found"
	MsgMissingItemKey  = "Missing item_name or company_name"
)

// ItemRepository define o contrato que o Serviço de Itens espera da camada de Persistência.
type ItemRepository interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	FindAll(ctx context.Context) ([]domain.Item, error)
	Delete(ctx context.Context, key domain.ItemKey) error
}

// Service implementa o cadastro, listagem e remoção de itens do catálogo.
type Service struct {
	repo     ItemRepository
	validate *validator.Validate
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Itens.
func NewService(repo ItemRepository, log logger.Logger) *Service {
	return &Service{repo: repo, validate: validator.New(), logger: log}
}

// Register valida o payload e cria o item. A chave (item_name, company_name)
// precisa ser nova.
func (s *Service) Register(ctx context.Context, reg domain.ItemRegistration) (domain.Item, error) {
	reg = domain.ItemRegistration{
		ItemName:     domain.FlexString(reg.ItemName.Trimmed()),
		CompanyName:  domain.FlexString(reg.CompanyName.Trimmed()),
		Quantity:     domain.FlexString(reg.Quantity.Trimmed()),
		PricePerItem: domain.FlexString(reg.PricePerItem.Trimmed()),
	}

	// 1. Campos obrigatórios
	if err := s.validate.Struct(reg); err != nil {
		s.logger.Debug("Cadastro de item com campos faltando.", map[string]interface{}{"error": err.Error()})
		return domain.Item{}, apperror.NewValidationError(MsgMissingFields)
	}

	// 2. Conversões
	quantity, err := strconv.Atoi(string(reg.Quantity))
	if err != nil || quantity < 0 || quantity > domain.MaxQuantity {
		return domain.Item{}, apperror.NewValidationError(MsgInvalidQuantity)
	}
	price, err := decimal.NewFromString(string(reg.PricePerItem))
	if err != nil || price.IsNegative() {
		return domain.Item{}, apperror.NewValidationError(MsgInvalidPrice)
	}
	price = price.Round(domain.PriceScale)
	if price.GreaterThan(domain.MaxPricePerItem) {
		return domain.Item{}, apperror.NewValidationError(MsgInvalidPrice)
	}

	// 3. Persistência
	item, err := s.repo.Create(ctx, domain.Item{
		ItemName:     string(reg.ItemName),
		CompanyName:  string(reg.CompanyName),
		Quantity:     quantity,
		PricePerItem: price,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateItem) {
			return domain.Item{}, apperror.NewValidationError(MsgDuplicateItem)
		}
		return domain.Item{}, err
	}

	s.logger.Info("Item cadastrado.", map[string]interface{}{"item_name": item.ItemName, "company_name": item.CompanyName, "quantity": item.Quantity})
	return item, nil
}

// List devolve todo o catálogo. Catálogo vazio é 404.
func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewNotFoundError(MsgNoItemsFound)
	}
	return items, nil
}

// Delete remove um item pela chave composta.
func (s *Service) Delete(ctx context.Context, key domain.ItemKey) error {
	if key.ItemName == "" || key.CompanyName == "" {
		return apperror.NewValidationError(MsgMissingItemKey)
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return apperror.NewNotFoundError(MsgItemNotFound)
		}
		return err
	}

	s.logger.Info("Item removido.", map[string]interface{}{"item_name": key.ItemName, "company_name": key.CompanyName})
	return nil
}
