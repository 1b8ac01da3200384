package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/logger"
)

// maxBodyBytes limita o corpo aceito pelos handlers.
const maxBodyBytes = 1 << 20

// ErrEmptyBody indica uma requisição sem corpo.
var ErrEmptyBody = errors.New("request body is empty")

// JSON escreve data como JSON com o status informado.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error traduz err para a resposta de erro padronizada. Erros 5xx são logados
// com a causa; erros de cliente só em Debug.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	body := domain.ErrorResponse{
		Status:   domain.StatusError,
		Code:     status,
		Category: category,
		Message:  message,
	}
	var missing *apperror.MissingItemsError
	if errors.As(err, &missing) {
		body.Details = missing.Details
	}
	JSON(w, status, body)
}

// Success escreve {status:"success", message[, data]} com 200.
func Success(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, domain.StatusResponse{Status: domain.StatusSuccess, Message: message, Data: data})
}

// MethodNotAllowed responde 405 no formato de erro padrão.
func MethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	JSON(w, http.StatusMethodNotAllowed, domain.ErrorResponse{
		Status:   domain.StatusError,
		Code:     http.StatusMethodNotAllowed,
		Category: "METHOD_NOT_ALLOWED",
		Message:  "Method not allowed",
	})
}

// DecodeJSON lê o corpo como JSON em dst, preservando números como json.Number.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(dst)
}

// DecodePayload aceita JSON ou formulário (urlencoded/multipart). Os campos do
// formulário são convertidos para um objeto JSON e decodificados em dst, de
// modo que as mesmas tags json e regras de validação valem para os dois.
func DecodePayload(r *http.Request, dst interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "" || mediaType == "application/json" {
		return DecodeJSON(r, dst)
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return err
		}
	} else if err := r.ParseForm(); err != nil {
		return err
	}

	fields := make(map[string]string, len(r.Form))
	for k, v := range r.Form {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
