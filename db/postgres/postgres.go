package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Pool sizes the connection pool. Zero fields fall back to DefaultPool.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPool suits a single server instance writing one trip per request.
var DefaultPool = Pool{
	MaxOpenConns:    10,
	MaxIdleConns:    2,
	ConnMaxLifetime: 30 * time.Minute,
}

func (p Pool) withDefaults() Pool {
	if p.MaxOpenConns <= 0 {
		p.MaxOpenConns = DefaultPool.MaxOpenConns
	}
	if p.MaxIdleConns <= 0 {
		p.MaxIdleConns = DefaultPool.MaxIdleConns
	}
	if p.MaxIdleConns > p.MaxOpenConns {
		p.MaxIdleConns = p.MaxOpenConns
	}
	if p.ConnMaxLifetime <= 0 {
		p.ConnMaxLifetime = DefaultPool.ConnMaxLifetime
	}
	return p
}

type PostgresDB struct {
	Conn   *sql.DB
	Ctx    context.Context
	Cancel context.CancelFunc
	URL    string
	Pool   Pool
}

// NewPostgresDB prepares a connection to the trip store. The context bounds
// the initial ping.
func NewPostgresDB(url string, pool Pool) *PostgresDB {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	return &PostgresDB{
		Ctx:    ctx,
		Cancel: cancel,
		URL:    url,
		Pool:   pool.withDefaults(),
	}
}

func (p *PostgresDB) open() error {
	conn, err := sql.Open("postgres", p.URL)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	conn.SetMaxOpenConns(p.Pool.MaxOpenConns)
	conn.SetMaxIdleConns(p.Pool.MaxIdleConns)
	conn.SetConnMaxLifetime(p.Pool.ConnMaxLifetime)
	p.Conn = conn
	return nil
}

func (p *PostgresDB) Connect() error {
	if err := p.open(); err != nil {
		return err
	}
	if err := p.Conn.PingContext(p.Ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

func (p *PostgresDB) Disconnect() error {
	p.Cancel()
	if p.Conn != nil {
		return p.Conn.Close()
	}
	return nil
}

func (p *PostgresDB) GetContext() context.Context {
	return p.Ctx
}
