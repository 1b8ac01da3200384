package inventory

import (
	"context"
	"net/http"

	"stockkeeper/internal/api/respond"
	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/logger"
	"stockkeeper/internal/pkg/middleware"
)

// MsgInvalidInput é a resposta 400 para corpo ausente ou sem lista de itens.
const MsgInvalidInput = "Invalid input. Expecting a list of items."

// InventoryService define o contrato que o Handler espera da camada de Serviço.
type InventoryService interface {
	UpdateInventory(ctx context.Context, entries []interface{}) (domain.BatchResult, error)
}

// Handler expõe o protocolo de atualização de inventário.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// UpdateInventoryHandler lida com a requisição POST /update_inventory.
// @Summary Aplica um lote de ajustes de estoque
// @Description Verifica a existência de todos os itens (tudo ou nada) e aplica cada ajuste em ordem. Falhas de negócio aparecem por item.
// @Tags inventory
// @Accept json
// @Produce json
// @Param batch body domain.UpdateInventoryRequest true "Lote de ajustes"
// @Success 200 {object} domain.BatchResult
// @Failure 400 {object} domain.ErrorResponse "Corpo ausente ou items não é uma lista"
// @Failure 404 {object} domain.ErrorResponse "Itens inexistentes; nenhum ajuste aplicado"
// @Failure 500 {object} domain.ErrorResponse "Falha de armazenamento ou timeout"
// @Security BearerAuth
// @Router /update_inventory [post]
func (h *Handler) UpdateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.MethodNotAllowed(w, http.MethodPost)
		return
	}

	// 1. Decodificação do lote
	var req domain.UpdateInventoryRequest
	if err := respond.DecodeJSON(r, &req); err != nil || len(req.Items) == 0 {
		respond.Error(w, r, h.Logger, apperror.NewValidationError(MsgInvalidInput))
		return
	}

	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		h.Logger.Info("Lote de ajustes recebido.", map[string]interface{}{
			"username":   claims.Username,
			"role":       claims.Role,
			"items":      len(req.Items),
			"request_id": middleware.RequestIDFromContext(r.Context()),
		})
	}

	// 2. Serviço
	result, err := h.Service.UpdateInventory(r.Context(), req.Items)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
