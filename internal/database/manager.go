package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DBManager struct {
	primary      *pgxpool.Pool
	replicas     []*pgxpool.Pool
	replicaIndex uint32
}

type Config struct {
	PrimaryDSN  string
	ReplicaDSNs []string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// NewDBManager connects to the primary and every replica and pings each of
// them. Reads are spread round-robin over the replicas, falling back to the
// primary when there are none.
func NewDBManager(ctx context.Context, cfg Config) (*DBManager, error) {
	primary, err := cfg.open(ctx, cfg.PrimaryDSN)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}

	m := &DBManager{primary: primary}
	for i, dsn := range cfg.ReplicaDSNs {
		replica, err := cfg.open(ctx, dsn)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("replica %d: %w", i, err)
		}
		m.replicas = append(m.replicas, replica)
	}
	return m, nil
}

func (c Config) open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := c.poolConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping: %w", err)
	}
	return pool, nil
}

func (c Config) poolConfig(dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if c.MaxConns > 0 {
		poolConfig.MaxConns = c.MaxConns
	}
	poolConfig.MinConns = c.MinConns
	if c.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = c.MaxConnLifetime
	}
	if c.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = c.MaxConnIdleTime
	}
	return poolConfig, nil
}

// Ping checks the primary; replicas only serve reads and are not required for
// the service to be healthy.
func (m *DBManager) Ping(ctx context.Context) error {
	return m.primary.Ping(ctx)
}

func (m *DBManager) Write() *pgxpool.Pool {
	return m.primary
}

func (m *DBManager) Read() *pgxpool.Pool {
	if len(m.replicas) == 0 {
		return m.primary
	}

	idx := atomic.AddUint32(&m.replicaIndex, 1) % uint32(len(m.replicas))
	return m.replicas[idx]
}

func (m *DBManager) Close() {
	if m.primary != nil {
		m.primary.Close()
	}
	for _, replica := range m.replicas {
		replica.Close()
	}
}

type PoolStats struct {
	Name     string
	Total    int32
	Idle     int32
	Acquired int32
}

func poolStats(name string, pool *pgxpool.Pool) PoolStats {
	st := pool.Stat()
	return PoolStats{
		Name:     name,
		Total:    st.TotalConns(),
		Idle:     st.IdleConns(),
		Acquired: st.AcquiredConns(),
	}
}

// Stats reports connection counts for the primary and each replica.
func (m *DBManager) Stats() []PoolStats {
	stats := make([]PoolStats, 0, 1+len(m.replicas))
	if m.primary != nil {
		stats = append(stats, poolStats("primary", m.primary))
	}
	for i, replica := range m.replicas {
		stats = append(stats, poolStats(fmt.Sprintf("replica-%d", i), replica))
	}
	return stats
}

// NewFromPools wraps pools that were opened elsewhere.
func NewFromPools(primary *pgxpool.Pool, replicas ...*pgxpool.Pool) *DBManager {
	return &DBManager{
		primary:  primary,
		replicas: replicas,
	}
}
