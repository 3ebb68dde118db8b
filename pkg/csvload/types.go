package csvload

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LoadConfig holds what both pipelines share.
type LoadConfig struct {
	// CSVPath is the input file
	CSVPath string

	// Table is the target table name, used verbatim (quoted, never normalized)
	Table string

	// Connection describes how to reach the database
	Connection *ConnectionConfig

	// WorkDir is where the intermediate artifact is written. Empty means the current directory.
	WorkDir string

	// Delimiter separates CSV fields. Zero means ','.
	Delimiter rune

	// KeepArtifacts leaves the intermediate file in place after the run
	KeepArtifacts bool

	// Timeout bounds the whole run. Zero means no deadline.
	Timeout time.Duration
}

func (c *LoadConfig) validate() []error {
	var errs []error

	if c.CSVPath == "" {
		errs = append(errs, fmt.Errorf("CSVPath is required: %w", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.Table) == "" {
		errs = append(errs, fmt.Errorf("Table is required: %w", ErrInvalidConfig))
	}

	if c.Connection == nil {
		errs = append(errs, fmt.Errorf("Connection is required: %w", ErrInvalidConfig))
	} else if !c.Connection.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %v: %w", c.Connection.AuthMethod, ErrUnsupportedAuthMethod))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errs
}

// CreateConfig contains all parameters needed for the table-creation pipeline.
type CreateConfig struct {
	LoadConfig

	// ColumnType is the SQL type given to every column. Empty means DefaultColumnType.
	ColumnType string

	// IncludeData appends INSERT statements for the CSV rows to the generated script
	IncludeData bool
}

// Validate checks if the CreateConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *CreateConfig) Validate() error {
	errs := c.validate()
	if strings.ContainsAny(c.ColumnType, ";`") {
		errs = append(errs, fmt.Errorf("column type %q contains forbidden characters: %w", c.ColumnType, ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// EffectiveColumnType returns ColumnType or the default.
func (c *CreateConfig) EffectiveColumnType() string {
	if strings.TrimSpace(c.ColumnType) == "" {
		return DefaultColumnType
	}
	return strings.TrimSpace(c.ColumnType)
}

// InsertConfig contains all parameters needed for the data-insertion pipeline.
type InsertConfig struct {
	LoadConfig

	// BatchSize caps rows per INSERT statement. Zero sizes batches by MaxPlaceholders.
	BatchSize int
}

// Validate checks if the InsertConfig has all required fields and valid values.
func (c *InsertConfig) Validate() error {
	errs := c.validate()
	if c.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("batch size cannot be negative: %w", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// CreateResult describes a completed table-creation run.
type CreateResult struct {
	Table       string
	Columns     []string
	RowsScanned int
	ScriptPath  string
}

// InsertResult describes a completed data-insertion run.
type InsertResult struct {
	Table        string
	Columns      []string
	RowsRead     int
	RowsAffected int64
	Statements   int
}

// ConnectionConfig represents resolved connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string

	// TLS is passed to the driver's tls parameter: "", "true", "false", "skip-verify" or "preferred"
	TLS string

	// TLSCA is a PEM bundle used to verify the server certificate. Implies TLS.
	TLSCA string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// AWS RDS IAM authentication
	AWSRegion string

	// Google Cloud SQL instance connection name (project:region:instance)
	GoogleInstance string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// Otherwise the DefaultAzureCredential chain is used.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	ConnectTimeout time.Duration
}

// Address returns host:port.
func (c *ConnectionConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS RDS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod converts a flag or config value into an AuthMethod.
// The empty string means AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google", "google-iam", "gcp":
		return AuthMethodGoogleIAM, nil
	case "azure", "azure-entra", "entra":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("%q (expected standard, aws-iam, google-iam or azure-entra): %w", s, ErrUnsupportedAuthMethod)
	}
}
