package domain

// Operation é o tipo de ajuste de estoque pedido para um item.
type Operation string

const (
	OperationAdd      Operation = "add"
	OperationSubtract Operation = "subtract"
)

// Valid informa se a operação é add ou subtract.
func (o Operation) Valid() bool {
	return o == OperationAdd || o == OperationSubtract
}

// Status de um resultado por item.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Mensagens por item devolvidas em /update_inventory.
const (
	MsgMissingKey        = "Missing item_name or company_name"
	MsgItemNotFound      = "Item not found"
	MsgInvalidQuantity   = "Invalid quantity"
	MsgNotEnoughStock    = "Not enough stock"
	MsgInvalidUpdateType = "Invalid update type"
	MsgUpdatedFmt        = "Inventory updated successfully. New quantity: %d"
	MsgMissingItemsBatch = "One or more items do not exist. No changes were applied."
)

// AdjustmentRequest é uma entrada já tipada de um lote de ajustes.
// Quantity guarda o valor bruto do wire: a conversão para inteiro positivo
// acontece na aplicação, item a item.
type AdjustmentRequest struct {
	Index       int
	Key         ItemKey
	RawQuantity interface{}
	Operation   Operation
}

// UpdateInventoryRequest é o corpo de POST /update_inventory.
type UpdateInventoryRequest struct {
	Items []interface{} `json:"items"`
}

// AdjustmentOutcome é o resultado de um ajuste individual.
type AdjustmentOutcome struct {
	ItemName    string `json:"item_name"`
	CompanyName string `json:"company_name"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	NewQuantity *int   `json:"new_quantity,omitempty"`
}

// BatchResult é a resposta 200 de /update_inventory, na ordem de entrada.
type BatchResult struct {
	Updates []AdjustmentOutcome `json:"updates"`
}

// MissingItemDetail descreve uma entrada rejeitada pela pré-verificação de existência.
type MissingItemDetail struct {
	ItemName    interface{} `json:"item_name"`
	CompanyName interface{} `json:"company_name"`
	Error       string      `json:"error"`
}

// StockAdjustedEvent é publicado após cada ajuste aplicado com sucesso.
type StockAdjustedEvent struct {
	EventID     string    `json:"event_id"`
	ItemName    string    `json:"item_name"`
	CompanyName string    `json:"company_name"`
	Operation   Operation `json:"operation"`
	Quantity    int       `json:"quantity"`
	NewQuantity int       `json:"new_quantity"`
	OccurredAt  string    `json:"occurred_at"`
}
