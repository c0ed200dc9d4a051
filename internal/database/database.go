package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"resumatch/internal/config"
)

var sqlOpen = sql.Open

const (
	applicationName   = "resumatch"
	connectTimeoutSec = 5
	pingTimeout       = 5 * time.Second
)

var errIncompleteConfig = errors.New("invalid database config: host, port, user, and name are required")

// BuildPostgresDSN renders the connection settings as a postgres:// URL. The
// application name is always set so sessions are identifiable in pg_stat_activity.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", errIncompleteConfig
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	q.Set("application_name", applicationName)
	q.Set("connect_timeout", strconv.Itoa(connectTimeoutSec))
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// NewPostgres opens the document metadata store through the pgx driver wrapped
// by otelsql and waits for a successful ping.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	configurePool(db, c)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// configurePool applies only the limits that are set; zero keeps the driver default.
func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}
