package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "stockkeeper/docs" // registra a especificação OpenAPI no swag
	"stockkeeper/internal/api/inventory"
	"stockkeeper/internal/api/item"
	"stockkeeper/internal/api/respond"
	"stockkeeper/internal/api/user"
	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/cache"
	"stockkeeper/internal/pkg/logger"
	"stockkeeper/internal/pkg/middleware"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Inventory *inventory.Handler
	Item      *item.Handler
	User      *user.Handler
}

// Options controla os middlewares aplicados pelo roteador.
type Options struct {
	AuthEnabled     bool
	Tokens          middleware.TokenService
	Cache           cache.Client
	RateLimit       int
	RateLimitPeriod time.Duration
	Logger          logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()
	log := opts.Logger

	// Com AUTH_ENABLED=false as rotas ficam abertas, como no serviço legado.
	authenticated := func(next http.HandlerFunc) http.HandlerFunc { return next }
	adminOnly := authenticated
	if opts.AuthEnabled {
		auth := middleware.NewAuthMiddleware(opts.Tokens, log)
		anyRole := middleware.PermissionMiddleware(log, domain.RoleEmployee, domain.RoleAdmin)
		admin := middleware.PermissionMiddleware(log, domain.RoleAdmin)
		authenticated = func(next http.HandlerFunc) http.HandlerFunc { return auth(anyRole(next)) }
		adminOnly = func(next http.HandlerFunc) http.HandlerFunc { return auth(admin(next)) }
	}

	// --- 1. Health Check ---
	mux.HandleFunc("/", HomeHandler(log))
	mux.HandleFunc("/ping", PingHandler)

	// --- 2. Inventário ---
	mux.HandleFunc("/update_inventory", authenticated(h.Inventory.UpdateInventoryHandler))

	// --- 3. Catálogo ---
	mux.HandleFunc("/item_register", authenticated(h.Item.RegisterItemHandler))
	mux.HandleFunc("/get_items", h.Item.GetItemsHandler)
	mux.HandleFunc("/delete_item", adminOnly(h.Item.DeleteItemHandler))

	// --- 4. Contas ---
	mux.HandleFunc("/register", h.User.RegisterHandler)
	mux.HandleFunc("/admin_register", h.User.AdminRegisterHandler)
	mux.HandleFunc("/login", h.User.LoginHandler)
	mux.HandleFunc("/admin_login", h.User.AdminLoginHandler)
	mux.HandleFunc("/check_user_exists", h.User.CheckUserExistsHandler)
	mux.HandleFunc("/get_employees", adminOnly(h.User.GetEmployeesHandler))
	mux.HandleFunc("/delete_employee", adminOnly(h.User.DeleteEmployeeHandler))

	// --- 5. Documentação ---
	mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 6. Middlewares globais ---
	var handler http.Handler = mux
	if opts.Cache != nil {
		handler = middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RateLimitPeriod, log)(handler)
	}
	return middleware.RequestLogger(log)(handler)
}

// HomeHandler responde na raiz; qualquer outro caminho desconhecido é 404.
func HomeHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			respond.Error(w, r, log, apperror.NewNotFoundError("Route not found"))
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Hello from the inventory service!"))
	}
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.MethodNotAllowed(w, http.MethodGet)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
