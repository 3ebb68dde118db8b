package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/csvload/internal/config"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// ConnFlags represents connection parameters from CLI flags.
//
// Note: Password is NOT a CLI flag. Use $DB_PASSWORD or a --dsn instead.
type ConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	TLS      string
	TLSCA    string

	AuthMethod     string
	AWSRegion      string
	GoogleInstance string
	AzureTenantID  string
	AzureClientID  string
}

// HasAddressing returns true if any flag that would conflict with a DSN was given.
// Database is excluded: it may override the DSN's database.
func (f *ConnFlags) HasAddressing() bool {
	return f.Host != "" || f.Port != 0 || f.Username != "" || f.TLS != ""
}

// EnvVars holds the environment variables the loaders read.
type EnvVars struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	AWSRegion         string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
}

// LoadFromEnvironment reads connection variables from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		AWSRegion:         os.Getenv("AWS_REGION"),
		AzureTenantID:     os.Getenv("AZURE_TENANT_ID"),
		AzureClientID:     os.Getenv("AZURE_CLIENT_ID"),
		AzureClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ResolveConnectionParams resolves connection parameters using this precedence:
//
//  1. DSN (--dsn), with --database allowed to override its database; a DSN
//     without a database falls back to $DB_NAME, then csvload.yaml
//  2. Flags (--host, --port, --user, --database, --tls)
//  3. Environment variables (DB_HOST, DB_PORT, DB_USER, DB_NAME)
//  4. csvload.yaml
//  5. Defaults (localhost:3306)
//
// The password comes from the DSN or $DB_PASSWORD only.
// Returns an error wrapping csvload.ErrInvalidConfig if both a DSN and
// addressing flags are given, if a port is malformed, or if no database
// can be determined.
func ResolveConnectionParams(
	dsn string,
	flags *ConnFlags,
	env *EnvVars,
	projectConfig *config.ProjectConfig,
) (*csvload.ConnectionConfig, error) {
	if flags == nil {
		flags = &ConnFlags{}
	}
	if env == nil {
		env = &EnvVars{}
	}
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	if dsn != "" && flags.HasAddressing() {
		return nil, fmt.Errorf(
			"cannot specify both --dsn and --host/--port/--user/--tls\n"+
				"Choose one approach:\n"+
				"  1. DSN: --dsn \"user:pass@tcp(localhost:3306)/mydb\"\n"+
				"  2. Flags: -H localhost -P 3306 -u myuser -d mydb\n"+
				"  3. Environment variables: export DB_HOST=localhost DB_USER=myuser DB_NAME=mydb: %w",
			csvload.ErrInvalidConfig,
		)
	}

	var cfg *csvload.ConnectionConfig
	var err error
	if dsn != "" {
		cfg, err = ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", csvload.ErrInvalidConfig, err)
		}
		if cfg.Password == "" {
			cfg.Password = env.DBPassword
		}
		cfg.Database = firstNonEmpty(flags.Database, cfg.Database, env.DBName, pc.Database)
	} else {
		cfg, err = resolveFromParams(flags, env, pc)
		if err != nil {
			return nil, err
		}
	}

	cfg.TLSCA = firstNonEmpty(flags.TLSCA, pc.TLSCA)

	if err := applyAuth(cfg, flags, env, pc); err != nil {
		return nil, err
	}

	if cfg.Database == "" {
		return nil, fmt.Errorf("no database selected (set $DB_NAME, --database or connection.database in %s): %w",
			config.ConfigFileName, csvload.ErrInvalidConfig)
	}

	return cfg, nil
}

// resolveFromParams builds a config from flags, environment and project file.
func resolveFromParams(flags *ConnFlags, env *EnvVars, pc config.ConnectionConfig) (*csvload.ConnectionConfig, error) {
	cfg := &csvload.ConnectionConfig{}

	cfg.Host = firstNonEmpty(flags.Host, env.DBHost, pc.Host, csvload.DefaultHost)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case env.DBPort != "":
		port, err := strconv.Atoi(env.DBPort)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("invalid $DB_PORT value '%s': must be a positive integer: %w", env.DBPort, csvload.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = csvload.DefaultPort
	}

	cfg.Username = firstNonEmpty(flags.Username, env.DBUser, pc.Username)
	if cfg.Username == "" {
		cfg.Username = firstNonEmpty(os.Getenv("USER"), os.Getenv("USERNAME"))
	}

	cfg.Password = env.DBPassword
	cfg.Database = firstNonEmpty(flags.Database, env.DBName, pc.Database)
	cfg.TLS = firstNonEmpty(flags.TLS, pc.TLS)

	return cfg, nil
}

// applyAuth sets the authentication method and its provider-specific fields.
// Flags take precedence over environment variables, which take precedence
// over the project file. The Azure client secret is only read from the environment.
func applyAuth(cfg *csvload.ConnectionConfig, flags *ConnFlags, env *EnvVars, pc config.ConnectionConfig) error {
	method, err := csvload.ParseAuthMethod(firstNonEmpty(flags.AuthMethod, pc.AuthMethod))
	if err != nil {
		return err
	}
	cfg.AuthMethod = method

	switch method {
	case csvload.AuthMethodAWSIAM:
		cfg.AWSRegion = firstNonEmpty(flags.AWSRegion, env.AWSRegion, pc.AWSRegion)
	case csvload.AuthMethodGoogleIAM:
		cfg.GoogleInstance = firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)
	case csvload.AuthMethodAzureEntraID:
		cfg.AzureTenantID = firstNonEmpty(flags.AzureTenantID, env.AzureTenantID, pc.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(flags.AzureClientID, env.AzureClientID, pc.AzureClientID)
		cfg.AzureClientSecret = env.AzureClientSecret
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
