package cli

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/csvload/internal/config"
	"github.com/vvka-141/csvload/internal/db"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// loadFlags holds the flag values shared by create-table and insert-table.
type loadFlags struct {
	dsn            string
	host           string
	port           int
	user           string
	database       string
	tls            string
	tlsCA          string
	authMethod     string
	awsRegion      string
	googleInstance string
	azureTenantID  string
	azureClientID  string

	envFiles      []string
	configPath    string
	workDir       string
	delimiter     string
	keepArtifacts bool
	timeout       time.Duration
	verbose       bool
}

func (f *loadFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&f.dsn, "dsn", "",
		"MySQL DSN, e.g. \"user:pass@tcp(localhost:3306)/mydb\"\n"+
			"Mutually exclusive with --host, --port, --user and --tls")
	flags.StringVarP(&f.host, "host", "H", "",
		"MySQL server host\n"+
			"Precedence: --host > $DB_HOST > csvload.yaml > localhost")
	flags.IntVarP(&f.port, "port", "P", 0,
		"MySQL server port\n"+
			"Precedence: --port > $DB_PORT > csvload.yaml > 3306")
	flags.StringVarP(&f.user, "user", "u", "",
		"MySQL user (default: $DB_USER or current OS user)")
	flags.StringVarP(&f.database, "database", "d", "",
		"Target database (default: $DB_NAME)")
	flags.StringVar(&f.tls, "tls", "",
		"Driver TLS mode: true|false|skip-verify|preferred")
	flags.StringVar(&f.tlsCA, "tls-ca", "",
		"PEM file with the CA that signed the server certificate")

	flags.StringVar(&f.authMethod, "auth-method", "",
		"Authentication: standard|aws-iam|google-iam|azure-entra (default: standard)")
	flags.StringVar(&f.awsRegion, "aws-region", "",
		"AWS region for RDS IAM tokens (overrides $AWS_REGION)")
	flags.StringVar(&f.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")
	flags.StringVar(&f.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	flags.StringVar(&f.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")

	flags.StringArrayVar(&f.envFiles, "env-file", nil,
		"Load variables from a .env file (repeatable; existing variables win)")
	flags.StringVar(&f.configPath, "config", "",
		"Path to a csvload.yaml (default: ./csvload.yaml if present)")
	flags.StringVar(&f.workDir, "work-dir", "",
		"Directory for the intermediate file (default: current directory)")
	flags.StringVar(&f.delimiter, "delimiter", ",",
		"CSV field separator (a single character, or \\t)")
	flags.BoolVar(&f.keepArtifacts, "keep-artifacts", false,
		"Leave the intermediate file in place after the run")
	flags.DurationVar(&f.timeout, "timeout", csvload.DefaultTimeout,
		"Deadline for the whole run (default: none)")
	flags.BoolVarP(&f.verbose, "verbose", "v", false,
		"Enable verbose output")
}

func (f *loadFlags) connFlags() *db.ConnFlags {
	return &db.ConnFlags{
		Host:           f.host,
		Port:           f.port,
		Username:       f.user,
		Database:       f.database,
		TLS:            f.tls,
		TLSCA:          f.tlsCA,
		AuthMethod:     f.authMethod,
		AWSRegion:      f.awsRegion,
		GoogleInstance: f.googleInstance,
		AzureTenantID:  f.azureTenantID,
		AzureClientID:  f.azureClientID,
	}
}

// loadEnvFiles loads ./.env when present, then each explicit file.
// Variables already set in the environment are never overwritten.
func loadEnvFiles(files []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w: %w", csvload.ErrInvalidConfig, err)
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load env file '%s': %w: %w", file, csvload.ErrInvalidConfig, err)
		}
	}
	return nil
}

// loadProjectConfig reads --config, or ./csvload.yaml when it exists.
// Returns nil config if no file applies.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w: %w", path, csvload.ErrInvalidConfig, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, csvload.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// parseDelimiter accepts a single character or the escape \t.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q: %w", s, csvload.ErrInvalidConfig)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q is not allowed: %w", s, csvload.ErrInvalidConfig)
	}
	return r, nil
}

// resolveEffectiveTimeout returns the flag value unless it was left unset and
// csvload.yaml names a timeout.
func resolveEffectiveTimeout(cmd *cobra.Command, projectCfg *config.ProjectConfig, flagTimeout time.Duration) (time.Duration, error) {
	if cmd.Flags().Changed("timeout") || projectCfg == nil || projectCfg.Timeout == "" {
		return flagTimeout, nil
	}
	d, err := projectCfg.TimeoutDuration()
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", config.ConfigFileName, csvload.ErrInvalidConfig, err)
	}
	return d, nil
}

// resolveLoadConfig turns flags, environment and csvload.yaml into a LoadConfig.
func (f *loadFlags) resolveLoadConfig(cmd *cobra.Command, args []string) (csvload.LoadConfig, *config.ProjectConfig, error) {
	if err := loadEnvFiles(f.envFiles); err != nil {
		return csvload.LoadConfig{}, nil, err
	}

	projectCfg, err := loadProjectConfig(f.configPath)
	if err != nil {
		return csvload.LoadConfig{}, nil, err
	}

	delimiter, err := parseDelimiter(f.delimiter)
	if err != nil {
		return csvload.LoadConfig{}, nil, err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, f.timeout)
	if err != nil {
		return csvload.LoadConfig{}, nil, err
	}

	conn, err := db.ResolveConnectionParams(f.dsn, f.connFlags(), db.LoadFromEnvironment(), projectCfg)
	if err != nil {
		return csvload.LoadConfig{}, nil, err
	}

	workDir := f.workDir
	if workDir == "" && projectCfg != nil {
		workDir = projectCfg.WorkDir
	}

	return csvload.LoadConfig{
		CSVPath:       args[0],
		Table:         args[1],
		WorkDir:       workDir,
		Delimiter:     delimiter,
		KeepArtifacts: f.keepArtifacts,
		Timeout:       timeout,
		Connection:    conn,
	}, projectCfg, nil
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(logger csvload.Logger, cfg *csvload.ConnectionConfig) {
	logger.Verbose("Connection resolved:")
	logger.Verbose("  Address: %s", cfg.Address())
	logger.Verbose("  User: %s", cfg.Username)
	logger.Verbose("  Database: %s", cfg.Database)
	if cfg.TLS != "" {
		logger.Verbose("  TLS: %s", cfg.TLS)
	}
	if cfg.TLSCA != "" {
		logger.Verbose("  TLS CA: %s", cfg.TLSCA)
	}
	logger.Verbose("  Auth Method: %s", cfg.AuthMethod)
	logger.Verbose("  DSN: %s", db.RedactedDSN(cfg))
}
