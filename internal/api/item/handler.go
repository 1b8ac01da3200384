package item

import (
	"context"
	"net/http"

	"stockkeeper/internal/api/respond"
	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/logger"
	"stockkeeper/internal/service/itemservice"
)

// ItemService define o contrato que o Handler espera da camada de Serviço.
type ItemService interface {
	Register(ctx context.Context, reg domain.ItemRegistration) (domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Delete(ctx context.Context, key domain.ItemKey) error
}

// Handler agrupa os handlers do catálogo de itens.
type Handler struct {
	Service ItemService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ItemService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// RegisterItemHandler lida com a requisição POST /item_register.
// @Summary Cadastra um item no catálogo
// @Tags items
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param item body domain.ItemRegistration true "Dados do item"
// @Success 200 {object} domain.StatusResponse
// @Failure 400 {object} domain.ErrorResponse "Campos faltando ou item já existente"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /item_register [post]
func (h *Handler) RegisterItemHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.MethodNotAllowed(w, http.MethodPost)
		return
	}

	var reg domain.ItemRegistration
	if err := respond.DecodePayload(r, &reg); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError(itemservice.MsgMissingFields))
		return
	}

	if _, err := h.Service.Register(r.Context(), reg); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.Success(w, itemservice.MsgRegistered, nil)
}

// GetItemsHandler lida com a requisição GET /get_items.
// @Summary Lista o catálogo
// @Tags items
// @Produce json
// @Success 200 {object} domain.StatusResponse
// @Failure 404 {object} domain.ErrorResponse "Catálogo vazio"
// @Router /get_items [get]
func (h *Handler) GetItemsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.MethodNotAllowed(w, http.MethodGet)
		return
	}

	items, err := h.Service.List(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.Success(w, itemservice.MsgItemsRetrieved, items)
}

// DeleteItemHandler lida com a requisição POST /delete_item (somente admin).
// @Summary Remove um item do catálogo
// @Tags items
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param key body domain.ItemKey true "Chave do item"
// @Success 200 {object} domain.StatusResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /delete_item [post]
func (h *Handler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		respond.MethodNotAllowed(w, "POST, DELETE")
		return
	}

	var payload struct {
		ItemName    domain.FlexString `json:"item_name"`
		CompanyName domain.FlexString `json:"company_name"`
	}
	if err := respond.DecodePayload(r, &payload); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError(itemservice.MsgMissingItemKey))
		return
	}

	key := domain.ItemKey{ItemName: payload.ItemName.Trimmed(), CompanyName: payload.CompanyName.Trimmed()}
	if err := h.Service.Delete(r.Context(), key); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.Success(w, itemservice.MsgItemDeleted, nil)
}
