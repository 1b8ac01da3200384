package domain

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists")
)

// Role é o papel de uma conta no sistema.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Account representa um funcionário ou um administrador.
// ExternalID é o worker_id (funcionário) ou admin_id (administrador).
type Account struct {
	ID           string    `json:"-"`
	ExternalID   string    `json:"id"`
	Username     string    `json:"username"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"` // Nunca sai na resposta
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// EmployeeView é a forma pública de um funcionário em GET /get_employees.
type EmployeeView struct {
	WorkerID    string `json:"worker_id"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
}

// Registration é o payload de registro de funcionário ou administrador.
// Funcionários enviam worker_id/passwd; administradores admin_id/password.
type Registration struct {
	WorkerID        FlexString `json:"worker_id"`
	AdminID         FlexString `json:"admin_id"`
	Username        FlexString `json:"username" validate:"required"`
	PhoneNumber     FlexString `json:"phone_number" validate:"required"`
	Passwd          FlexString `json:"passwd"`
	Password        FlexString `json:"password"`
	ConfirmPassword FlexString `json:"confirm_passwd"`
}

// Credentials é o payload de login. Aceita passwd ou password.
type Credentials struct {
	Username FlexString `json:"username"`
	Passwd   FlexString `json:"passwd"`
	Password FlexString `json:"password"`
}

// Secret devolve a senha informada, seja em passwd ou password.
func (c Credentials) Secret() string {
	if c.Passwd != "" {
		return string(c.Passwd)
	}
	return string(c.Password)
}

// LoginResult é devolvido por um login bem-sucedido.
type LoginResult struct {
	Account Account
	Token   string
}
