package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Open abre e configura o pool de conexões para o driver informado
// ("postgres" ou "mysql") e devolve o dialeto correspondente.
func Open(driver, dataSourceName string) (*sql.DB, Dialect, error) {
	switch driver {
	case "postgres":
		db, err := NewPostgresDB(dataSourceName)
		return db, Postgres, err
	case "mysql":
		db, err := NewMySQLDB(dataSourceName)
		return db, MySQL, err
	default:
		return nil, Dialect{}, fmt.Errorf("driver de banco desconhecido: %q", driver)
	}
}

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL.
func NewPostgresDB(dataSourceName string) (*sql.DB, error) {
	return openPool("postgres", dataSourceName)
}

// NewMySQLDB inicializa o pool com o MySQL. parseTime é forçado para que
// colunas TIMESTAMP sejam lidas como time.Time.
func NewMySQLDB(dataSourceName string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("DSN MySQL inválida: %w", err)
	}
	cfg.ParseTime = true
	return openPool("mysql", cfg.FormatDSN())
}

func openPool(driver, dataSourceName string) (*sql.DB, error) {
	// 1. Abrir a Conexão (Sem tentar ainda usar o pool)
	db, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// 2. Testar a Conexão Imediatamente
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// 3. Configuração do Connection Pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}
