package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/vvka-141/csvload/internal/logging"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// Connection pool configuration constants
const (
	// MaxOpenConns pins a run to one session so TRUNCATE and INSERT share it.
	MaxOpenConns = 1

	// ConnMaxIdleTime closes the session if a run stalls between statements.
	ConnMaxIdleTime = 10 * time.Minute
)

// MySQL server error numbers that get dedicated guidance.
const (
	erTooManyConnections uint16 = 1040
	erDBAccessDenied     uint16 = 1044
	erAccessDenied       uint16 = 1045
	erBadDB              uint16 = 1049
)

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(MaxOpenConns)
	db.SetMaxIdleConns(MaxOpenConns)
	db.SetConnMaxIdleTime(ConnMaxIdleTime)
}

// open builds a handle from a driver config and verifies it with a ping.
// The returned *sqlx.DB satisfies csvload.DBConnection.
func open(ctx context.Context, mc *mysql.Config, cfg *csvload.ConnectionConfig) (*sqlx.DB, error) {
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("invalid connection parameters: %w: %w", csvload.ErrInvalidConfig, err)
	}

	db := sqlx.NewDb(sql.OpenDB(connector), "mysql")
	configurePool(db.DB)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapConnectionError(err, cfg)
	}
	return db, nil
}

// StandardConnector implements the Connector interface for
// username/password authentication.
type StandardConnector struct {
	config *csvload.ConnectionConfig
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *csvload.ConnectionConfig) *StandardConnector {
	return &StandardConnector{config: config}
}

// Connect opens a single-connection handle with multi-statement mode enabled.
// Failures are not retried.
func (c *StandardConnector) Connect(ctx context.Context) (csvload.DBConnection, error) {
	mc, err := BuildDriverConfig(c.config)
	if err != nil {
		return nil, err
	}
	return open(ctx, mc, c.config)
}

// Factory returns a ConnectorFactory whose connectors report through logger.
func Factory(logger csvload.Logger) csvload.ConnectorFactory {
	return func(config *csvload.ConnectionConfig) (csvload.Connector, error) {
		return NewConnector(config, logger)
	}
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod.
func NewConnector(config *csvload.ConnectionConfig, logger csvload.Logger) (csvload.Connector, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	switch config.AuthMethod {
	case csvload.AuthMethodStandard:
		return NewStandardConnector(config), nil
	case csvload.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case csvload.AuthMethodGoogleIAM:
		return newGoogleConnector(config)
	case csvload.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, csvload.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw driver errors with actionable guidance.
// The result always chains csvload.ErrConnectionFailed and the original error.
func wrapConnectionError(err error, cfg *csvload.ConnectionConfig) error {
	addr := cfg.Address()

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erAccessDenied:
			return fmt.Errorf(`%w: access denied for user "%s"

Possible causes:
  - Wrong password (check $DB_PASSWORD)
  - Wrong username (check $DB_USER or --user)
  - User is not allowed to connect from this host

Original error: %w`, csvload.ErrConnectionFailed, cfg.Username, err)

		case erDBAccessDenied:
			return fmt.Errorf(`%w: user "%s" has no access to database "%s"

Grant it with:
  GRANT ALL ON %s.* TO '%s'@'%%';

Original error: %w`, csvload.ErrConnectionFailed, cfg.Username, cfg.Database, cfg.Database, cfg.Username, err)

		case erBadDB:
			return fmt.Errorf(`%w: database "%s" does not exist

To create it:
  CREATE DATABASE %s;

Original error: %w`, csvload.ErrConnectionFailed, cfg.Database, cfg.Database, err)

		case erTooManyConnections:
			return fmt.Errorf(`%w: too many connections to %s

Possible causes:
  - max_connections limit reached on the server
  - Stale sessions from earlier runs (check SHOW PROCESSLIST)

Original error: %w`, csvload.ErrConnectionFailed, addr, err)
		}
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused to %s

Possible causes:
  - MySQL is not running (check: mysqladmin -h %s -P %d ping)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, csvload.ErrConnectionFailed, addr, cfg.Host, cfg.Port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`%w: cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled (check $DB_HOST)
  - DNS is not configured or reachable
  - Network connection issue

Original error: %w`, csvload.ErrConnectionFailed, cfg.Host, err)

	case strings.Contains(errStr, "access denied"):
		return fmt.Errorf(`%w: access denied for user "%s"

Original error: %w`, csvload.ErrConnectionFailed, cfg.Username, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out") ||
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf(`%w: connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, csvload.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "tls") || strings.Contains(errStr, "ssl") || strings.Contains(errStr, "x509"):
		return fmt.Errorf(`%w: TLS connection error

Possible causes:
  - Server does not support TLS but --tls=true was given
  - Certificate verification failed (try --tls=skip-verify)

Original error: %w`, csvload.ErrConnectionFailed, err)

	default:
		return fmt.Errorf("%w: failed to connect to %s: %w", csvload.ErrConnectionFailed, addr, err)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *csvload.ConnectionConfig, logger csvload.Logger) (csvload.Connector, error) {
	tokenProvider, err := NewAWSIAMTokenProvider(config.Address(), config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w: %w", csvload.ErrInvalidConfig, err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", logger), nil
}

// newGoogleConnector creates a GoogleCloudSQLConnector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *csvload.ConnectionConfig) (csvload.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", csvload.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a username (--user or $DB_USER): %w", csvload.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
// If explicit credentials (tenant, client, secret) are provided, uses Service Principal auth.
// Otherwise, falls back to DefaultAzureCredential chain.
func newAzureConnector(config *csvload.ConnectionConfig, logger csvload.Logger) (csvload.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", logger), nil
}
