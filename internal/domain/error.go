package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Status   string              `json:"status" example:"error"`
	Code     int                 `json:"code" example:"404"`
	Category string              `json:"category" example:"NOT_FOUND"`
	Message  string              `json:"message" example:"Item not found"`
	Details  []MissingItemDetail `json:"details,omitempty"`
}

// StatusResponse é a resposta simples {status, message} das rotas de cadastro.
type StatusResponse struct {
	Status  string      `json:"status" example:"success"`
	Message string      `json:"message" example:"Product registered successfully"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
