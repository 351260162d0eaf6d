package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"

	"hostel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Connection wraps the archive database handle. The in-memory ledger is
// authoritative; Postgres only receives write-behind copies and hands state
// back at startup, so a single pool is enough.
type Connection struct {
	DB *sqlx.DB
}

func New(config *config.Config) *Connection {
	if !config.Archive.Enable {
		return &Connection{}
	}

	pg := config.Archive.Postgres

	return &Connection{
		DB: createConnection(
			pg.Username,
			pg.Password,
			pg.Host,
			pg.Port,
			pg.Name,
			pg.SSLMode,
			pg.MaxRetry,
			pg.RetryWaitTime,
		),
	}
}

// Enabled reports whether an archive database is configured and reachable.
func (c *Connection) Enabled() bool {
	return c != nil && c.DB != nil
}

func createConnection(username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) *sqlx.DB {
	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("host", host).
				Str("port", port).
				Str("dbName", dbName).
				Msg("Connected to archive database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("host", host).
			Str("port", port).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to archive database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
