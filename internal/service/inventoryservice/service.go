package inventoryservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/events"
	"stockkeeper/internal/pkg/logger"
)

// CatalogStore é o que o serviço de inventário espera do Catálogo de Itens.
// Exists deve ler a fonte de verdade (sem cache).
type CatalogStore interface {
	Exists(ctx context.Context, key domain.ItemKey) (bool, error)
	UpdateQuantity(ctx context.Context, key domain.ItemKey, fn domain.QuantityUpdate) (domain.Item, error)
}

// Service aplica lotes de ajustes de estoque.
type Service struct {
	store        CatalogStore
	publisher    events.Publisher
	tracer       trace.Tracer
	logger       logger.Logger
	batchTimeout time.Duration
	now          func() time.Time
}

// Option personaliza o Service.
type Option func(*Service)

// WithPublisher define o destino dos eventos de ajuste.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithTracerProvider define o provider dos spans do lote.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracer = tp.Tracer("stockkeeper/inventory") }
}

// WithBatchTimeout limita a duração de um lote. Zero desliga o limite.
func WithBatchTimeout(d time.Duration) Option {
	return func(s *Service) { s.batchTimeout = d }
}

// NewService cria e retorna uma nova instância do Serviço de Inventário.
func NewService(store CatalogStore, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		publisher: events.NopPublisher{},
		tracer:    noop.NewTracerProvider().Tracer(""),
		logger:    log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateInventory executa o protocolo de atualização sobre as entradas cruas
// de um lote: pré-verificação de existência (tudo ou nada), depois aplicação
// item a item em ordem, com falhas de negócio isoladas por item.
func (s *Service) UpdateInventory(ctx context.Context, entries []interface{}) (domain.BatchResult, error) {
	if len(entries) == 0 {
		return domain.BatchResult{}, apperror.NewValidationError("items must be a non-empty list")
	}

	if s.batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.batchTimeout)
		defer cancel()
	}

	ctx, span := s.tracer.Start(ctx, "inventory.update_batch", trace.WithAttributes(attribute.Int("batch.size", len(entries))))
	defer span.End()

	s.logger.Debug("Iniciando lote de ajustes.", map[string]interface{}{"size": len(entries)})

	// 1. Pré-verificação de existência
	requests, missing, err := s.precheck(ctx, entries)
	if err != nil {
		return domain.BatchResult{}, s.fail(ctx, span, "Falha na pré-verificação do lote.", err)
	}
	if len(missing) > 0 {
		span.SetAttributes(attribute.Int("batch.rejected", len(missing)))
		s.logger.Info("Lote rejeitado: itens inexistentes ou malformados.", map[string]interface{}{"rejected": len(missing), "size": len(entries)})
		return domain.BatchResult{}, apperror.NewMissingItemsError(missing)
	}

	// 2. Aplicação em ordem
	result := domain.BatchResult{Updates: make([]domain.AdjustmentOutcome, 0, len(requests))}
	applied := 0
	for _, req := range requests {
		outcome, err := s.apply(ctx, req)
		if err != nil {
			span.SetAttributes(attribute.Int("batch.applied", applied))
			return domain.BatchResult{}, s.fail(ctx, span, "Falha ao aplicar ajuste; lote interrompido.", err)
		}
		if outcome.Status == domain.StatusSuccess {
			applied++
		}
		result.Updates = append(result.Updates, outcome)
	}

	span.SetAttributes(attribute.Int("batch.applied", applied))
	s.logger.Info("Lote de ajustes concluído.", map[string]interface{}{"size": len(requests), "applied": applied})
	return result, nil
}

// apply processa um único ajuste. Falhas de negócio viram outcome de erro;
// só falhas de armazenamento voltam como error.
func (s *Service) apply(ctx context.Context, req domain.AdjustmentRequest) (domain.AdjustmentOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.adjust_item", trace.WithAttributes(
		attribute.String("item.name", req.Key.ItemName),
		attribute.String("item.company", req.Key.CompanyName),
		attribute.String("adjustment.type", string(req.Operation)),
	))
	defer span.End()

	// 1. Quantidade
	requested, ok := parseQuantity(req.RawQuantity)
	if !ok {
		span.SetAttributes(attribute.String("outcome", domain.MsgInvalidQuantity))
		return failure(req.Key, domain.MsgInvalidQuantity), nil
	}

	// 2. Operação
	if !req.Operation.Valid() {
		span.SetAttributes(attribute.String("outcome", domain.MsgInvalidUpdateType))
		return failure(req.Key, domain.MsgInvalidUpdateType), nil
	}

	// 3. Read-modify-write atômico no repositório
	item, err := s.store.UpdateQuantity(ctx, req.Key, adjustment(req.Operation, requested))
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInsufficientStock):
		span.SetAttributes(attribute.String("outcome", domain.MsgNotEnoughStock))
		return failure(req.Key, domain.MsgNotEnoughStock), nil
	case errors.Is(err, errQuantityOverflow):
		span.SetAttributes(attribute.String("outcome", domain.MsgInvalidQuantity))
		return failure(req.Key, domain.MsgInvalidQuantity), nil
	case errors.Is(err, domain.ErrItemNotFound):
		// Removido por outra requisição depois da pré-verificação.
		span.SetAttributes(attribute.String("outcome", domain.MsgItemNotFound))
		return failure(req.Key, domain.MsgItemNotFound), nil
	default:
		span.RecordError(err)
		return domain.AdjustmentOutcome{}, err
	}

	span.SetAttributes(attribute.Int("item.new_quantity", item.Quantity))
	s.publish(ctx, req, requested, item)
	return success(item), nil
}

func (s *Service) publish(ctx context.Context, req domain.AdjustmentRequest, requested int, item domain.Item) {
	event := domain.StockAdjustedEvent{
		EventID:     uuid.NewString(),
		ItemName:    item.ItemName,
		CompanyName: item.CompanyName,
		Operation:   req.Operation,
		Quantity:    requested,
		NewQuantity: item.Quantity,
		OccurredAt:  s.now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.publisher.PublishStockAdjusted(ctx, event); err != nil {
		s.logger.Warn("Falha ao publicar evento de estoque.", map[string]interface{}{"item_name": item.ItemName, "company_name": item.CompanyName, "error": err.Error()})
	}
}

// fail traduz uma falha de armazenamento para o erro da borda: prazo do
// lote estourado vira TimeoutError, cancelamento pelo cliente vira
// CanceledError, erros tipados passam, o resto vira InternalError.
func (s *Service) fail(ctx context.Context, span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	switch {
	case apperror.IsTimeout(ctx.Err()) || apperror.IsTimeout(err):
		s.logger.Warn("Lote de ajustes excedeu o tempo limite.", map[string]interface{}{"error": err.Error()})
		return apperror.NewTimeoutError("Inventory update timed out; please retry", err)
	case apperror.IsCanceled(ctx.Err()) || apperror.IsCanceled(err):
		s.logger.Info("Lote de ajustes cancelado pelo cliente.", map[string]interface{}{"error": err.Error()})
		return apperror.NewCanceledError("Inventory update canceled by client", err)
	}

	s.logger.Error(msg, err)
	var appErr apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, domain.ErrVersionConflict) {
		return apperror.NewInternalError("Item was modified concurrently; please retry", err)
	}
	return apperror.NewInternalError(err.Error(), err)
}
