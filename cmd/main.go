package main

import (
	"context"
	"database/sql"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"stockkeeper/config"
	"stockkeeper/internal/pkg/cache"
	"stockkeeper/internal/pkg/database"
	"stockkeeper/internal/pkg/events"
	"stockkeeper/internal/pkg/logger"
	"stockkeeper/internal/pkg/token"
	"stockkeeper/internal/pkg/tracing"

	// Camadas para Injeção de Dependências
	"stockkeeper/internal/api/inventory" // Handlers
	"stockkeeper/internal/api/item"
	"stockkeeper/internal/api/router" // Roteador central
	"stockkeeper/internal/api/user"
	"stockkeeper/internal/repository/accountrepo" // Acesso a Dados
	"stockkeeper/internal/repository/itemrepo"
	"stockkeeper/internal/service/inventoryservice" // Lógica de Negócio
	"stockkeeper/internal/service/itemservice"
	"stockkeeper/internal/service/userservice"
)

// catalogStore é o que os serviços de catálogo e inventário exigem do repositório.
type catalogStore interface {
	inventoryservice.CatalogStore
	itemservice.ItemRepository
}

func main() {
	// 0. Variáveis de ambiente (.env é opcional; em Docker vêm do sistema)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	defer syncLogger(appLog)
	appLog.Info("Inicializando serviço de inventário.", map[string]interface{}{"service": cfg.ServiceName, "env": cfg.Environment, "db_driver": cfg.DBDriver})

	// 2. Recursos de Infraestrutura

	// A. Cache (Redis). Sem REDIS_ADDR o cache e o rate limit ficam desligados.
	var cacheClient cache.Client = cache.NopClient{}
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			appLog.Warn("Redis indisponível no boot; seguindo com o cliente configurado.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		} else {
			appLog.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
		}
		cacheClient = client
	}
	defer closeQuietly(appLog, "cache", cacheClient)

	// B. Banco de Dados (PostgreSQL, MySQL ou memória)
	items, accounts, db := openStorage(cfg, cacheClient, appLog)
	if db != nil {
		defer db.Close()
	}

	// C. Tracing (OTLP/HTTP)
	tracerProvider, shutdownTracing, err := tracing.Setup(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		appLog.Fatal("Falha ao configurar o tracing.", err)
	}

	// D. Eventos (Kafka)
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.DBTimeout, appLog)
		appLog.Info("Publicação de eventos habilitada.", map[string]interface{}{"brokers": cfg.KafkaBrokers, "topic": cfg.KafkaTopic})
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// B. Serviços
	inventorySvc := inventoryservice.NewService(items, appLog,
		inventoryservice.WithPublisher(publisher),
		inventoryservice.WithTracerProvider(tracerProvider),
		inventoryservice.WithBatchTimeout(cfg.BatchTimeout),
	)
	itemSvc := itemservice.NewService(items, appLog)
	userSvc := userservice.NewService(accounts, tokenSvc, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	// C. Handlers
	handlers := router.Handlers{
		Inventory: inventory.NewHandler(inventorySvc, appLog),
		Item:      item.NewHandler(itemSvc, appLog),
		User:      user.NewHandler(userSvc, appLog),
	}

	// 4. Roteador e Servidor
	var limiterCache cache.Client
	if cfg.RedisAddr != "" {
		limiterCache = cacheClient
	}
	r := router.NewRouter(handlers, router.Options{
		AuthEnabled:     cfg.AuthEnabled,
		Tokens:          tokenSvc,
		Cache:           limiterCache,
		RateLimit:       cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
		Logger:          appLog,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.BatchTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor ouvindo na porta", map[string]interface{}{"port": cfg.Port, "auth_enabled": cfg.AuthEnabled})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}
	if err := publisher.Close(); err != nil {
		appLog.Error("Falha ao fechar o publicador de eventos.", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		appLog.Error("Falha ao exportar spans pendentes.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}

// openStorage escolhe o armazenamento a partir de DB_DRIVER. Para SQL a
// conexão é aberta e as migrations são aplicadas antes de servir.
func openStorage(cfg *config.Config, cacheClient cache.Client, appLog logger.Logger) (catalogStore, userservice.AccountRepository, *sql.DB) {
	if cfg.DBDriver == config.DriverMemory {
		appLog.Warn("Usando armazenamento em memória; os dados somem ao reiniciar.", nil)
		return itemrepo.NewMemoryRepository(), accountrepo.NewMemoryRepository(), nil
	}

	db, dialect, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	appLog.Info("Conexão com o banco estabelecida.", map[string]interface{}{"driver": dialect.Name})

	if err := database.Migrate(db, dialect); err != nil {
		appLog.Fatal("Falha ao aplicar migrations.", err)
	}

	items := itemrepo.NewItemRepository(db, dialect, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	accounts := accountrepo.NewAccountRepository(db, dialect, cfg.DBTimeout, appLog)
	return items, accounts, db
}

func closeQuietly(appLog logger.Logger, name string, v interface{}) {
	if c, ok := v.(io.Closer); ok {
		if err := c.Close(); err != nil {
			appLog.Warn("Falha ao fechar recurso.", map[string]interface{}{"resource": name, "error": err.Error()})
		}
	}
}

func syncLogger(appLog logger.Logger) {
	if s, ok := appLog.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
