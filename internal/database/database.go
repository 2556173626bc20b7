package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/saltyorg/inman/internal/config"
	"github.com/saltyorg/inman/internal/logging"
)

// Store runs the invoicing stored procedures. It holds no state between
// calls apart from the connection pool.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
	log     zerolog.Logger
}

// NewStore wraps an open pool.
func NewStore(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		log:     logging.For("database"),
	}
}

// Open creates the connection pool described by cfg and verifies it with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var db *sqlx.DB
	switch dialect {
	case Postgres:
		db, err = openPostgres(cfg)
	default:
		db, err = openMySQL(cfg)
	}
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, config.GetTimeouts().DatabasePing)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := NewStore(db, dialect)
	store.log.Debug().Str("driver", string(dialect)).Msg("Database connection established")
	return store, nil
}

func openMySQL(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driverLog := logging.For("mysql")
	if err := mysql.SetLogger(&driverLog); err != nil {
		return nil, fmt.Errorf("failed to set mysql logger: %w", err)
	}

	db, err := sqlx.Open("mysql", MySQLDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func openPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	connConfig, err := pgx.ParseConfig(PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	// Statement tracing is only worth its noise at trace level.
	if zerolog.GlobalLevel() <= zerolog.TraceLevel {
		connConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(logging.For("pgx")),
			LogLevel: tracelog.LogLevelTrace,
		}
	}

	return sqlx.NewDb(stdlib.OpenDB(*connConfig), "pgx"), nil
}

// MySQLDSN returns cfg.DSN, or builds one from the connection parts.
func MySQLDSN(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	return mc.FormatDSN()
}

// PostgresDSN returns cfg.DSN, or builds a postgres:// URL from the connection parts.
func PostgresDSN(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

// Dialect returns the SQL dialect of the pool.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.log.Debug().Msg("Closing database connection pool")
	return s.db.Close()
}

// transaction wraps fn in a database transaction
func (s *Store) transaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
