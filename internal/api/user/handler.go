package user

import (
	"context"
	"net/http"
	"strings"

	"stockkeeper/internal/api/respond"
	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/logger"
	"stockkeeper/internal/service/userservice"
)

// UserService define o contrato para as operações de contas.
type UserService interface {
	Register(ctx context.Context, role domain.Role, reg domain.Registration) (domain.Account, error)
	Login(ctx context.Context, role domain.Role, creds domain.Credentials) (domain.LoginResult, error)
	CheckUserExists(ctx context.Context, username, password string) error
	ListEmployees(ctx context.Context) ([]domain.EmployeeView, error)
	DeleteEmployee(ctx context.Context, username string) error
}

// Handler agrupa todos os métodos de Handler de contas.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// RegisterHandler lida com POST /register (funcionário).
// @Summary Registra um funcionário
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param registration body domain.Registration true "worker_id, username, phone_number, passwd, confirm_passwd"
// @Success 200 {object} domain.StatusResponse
// @Failure 400 {object} domain.ErrorResponse "Campos faltando ou senhas diferentes"
// @Failure 409 {object} domain.ErrorResponse "Username ou worker_id já cadastrado"
// @Router /register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, domain.RoleEmployee, userservice.MsgUserRegistered)
}

// AdminRegisterHandler lida com POST /admin_register.
// @Summary Registra um administrador
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param registration body domain.Registration true "admin_id, username, phone_number, password, confirm_passwd"
// @Success 200 {object} domain.StatusResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /admin_register [post]
func (h *Handler) AdminRegisterHandler(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, domain.RoleAdmin, userservice.MsgAdminRegistered)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, role domain.Role, okMsg string) {
	if r.Method != http.MethodPost {
		respond.MethodNotAllowed(w, http.MethodPost)
		return
	}

	var reg domain.Registration
	if err := respond.DecodePayload(r, &reg); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError(userservice.MsgMissingFields))
		return
	}

	if _, err := h.Service.Register(r.Context(), role, reg); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.Success(w, okMsg, nil)
}

// LoginHandler lida com POST /login (funcionário).
// @Summary Login de funcionário
// @Description Valida username/passwd e devolve um JWT em token.
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body domain.Credentials true "username e passwd"
// @Success 200 {object} domain.StatusResponse
// @Failure 400 {object} domain.ErrorResponse "Campos faltando ou senha inválida"
// @Failure 404 {object} domain.ErrorResponse "Username não encontrado"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.RoleEmployee, userservice.MsgLoginOK)
}

// AdminLoginHandler lida com POST /admin_login.
// @Summary Login de administrador
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body domain.Credentials true "username e password"
// @Success 200 {object} domain.StatusResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /admin_login [post]
func (h *Handler) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.RoleAdmin, userservice.MsgAdminLoginOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, role domain.Role, okMsg string) {
	if r.Method != http.MethodPost {
		respond.MethodNotAllowed(w, http.MethodPost)
		return
	}

	var creds domain.Credentials
	if err := respond.DecodePayload(r, &creds); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError(userservice.MsgMissingCredentials))
		return
	}

	res, err := h.Service.Login(r.Context(), role, creds)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, domain.StatusResponse{Status: domain.StatusSuccess, Message: okMsg, Token: res.Token})
}

// CheckUserExistsHandler lida com GET /check_user_exists?username=&passwd=.
// @Summary Confere credenciais de um funcionário
// @Tags users
// @Produce json
// @Param username query string true "Username"
// @Param passwd query string true "Senha"
// @Success 200 {object} domain.StatusResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /check_user_exists [get]
func (h *Handler) CheckUserExistsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.MethodNotAllowed(w, http.MethodGet)
		return
	}

	q := r.URL.Query()
	if err := h.Service.CheckUserExists(r.Context(), strings.TrimSpace(q.Get("username")), q.Get("passwd")); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.Success(w, userservice.MsgUserExists, nil)
}

// GetEmployeesHandler lida com GET /get_employees (somente admin).
// @Summary Lista funcionários
// @Tags users
// @Produce json
// @Success 200 {object} domain.StatusResponse
// @Failure 404 {object} domain.ErrorResponse "Nenhum funcionário"
// @Security BearerAuth
// @Router /get_employees [get]
func (h *Handler) GetEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.MethodNotAllowed(w, http.MethodGet)
		return
	}

	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.Success(w, userservice.MsgEmployeesListed, employees)
}

// DeleteEmployeeHandler lida com POST /delete_employee (somente admin).
// @Summary Remove um funcionário
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Success 200 {object} domain.StatusResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /delete_employee [post]
func (h *Handler) DeleteEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		respond.MethodNotAllowed(w, "POST, DELETE")
		return
	}

	var payload struct {
		Username domain.FlexString `json:"username"`
	}
	if err := respond.DecodePayload(r, &payload); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError(userservice.MsgMissingUsername))
		return
	}

	if err := h.Service.DeleteEmployee(r.Context(), payload.Username.Trimmed()); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.Success(w, userservice.MsgEmployeeDeleted, nil)
}
