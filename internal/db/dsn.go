package db

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// BuildDriverConfig converts resolved parameters into a driver config.
// Multi-statement mode is always on: the table-creation script is sent in one call.
func BuildDriverConfig(cfg *csvload.ConnectionConfig) (*mysql.Config, error) {
	mc := baseDriverConfig(cfg)
	if cfg.TLSCA != "" {
		tlsConfig, err := loadCATLSConfig(cfg.TLSCA, cfg.Host)
		if err != nil {
			return nil, err
		}
		mc.TLS = tlsConfig
		mc.TLSConfig = ""
	}
	return mc, nil
}

func baseDriverConfig(cfg *csvload.ConnectionConfig) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Address()
	mc.DBName = cfg.Database
	mc.MultiStatements = true
	mc.TLSConfig = cfg.TLS
	if cfg.ConnectTimeout > 0 {
		mc.Timeout = cfg.ConnectTimeout
	}
	return mc
}

// loadCATLSConfig builds a TLS config that trusts only the CA bundle at path.
func loadCATLSConfig(path, serverName string) (*tls.Config, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read TLS CA %s: %w: %w", path, csvload.ErrInvalidConfig, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in TLS CA %s: %w", path, csvload.ErrInvalidConfig)
	}
	return &tls.Config{RootCAs: pool, ServerName: serverName, MinVersion: tls.VersionTLS12}, nil
}

// ParseDSN parses a go-sql-driver DSN such as
// "user:pass@tcp(host:3306)/dbname?tls=true" into connection parameters.
func ParseDSN(dsn string) (*csvload.ConnectionConfig, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}
	if mc.Net != "" && mc.Net != "tcp" {
		return nil, fmt.Errorf("unsupported DSN network %q (only tcp)", mc.Net)
	}

	cfg := &csvload.ConnectionConfig{
		Host:           csvload.DefaultHost,
		Port:           csvload.DefaultPort,
		Username:       mc.User,
		Password:       mc.Passwd,
		Database:       mc.DBName,
		TLS:            mc.TLSConfig,
		AuthMethod:     csvload.AuthMethodStandard,
		ConnectTimeout: mc.Timeout,
	}

	if mc.Addr != "" {
		host, portStr, err := net.SplitHostPort(mc.Addr)
		if err != nil {
			cfg.Host = mc.Addr
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return nil, fmt.Errorf("invalid DSN port %q: %w", portStr, err)
			}
			cfg.Host = host
			cfg.Port = port
		}
	}

	return cfg, nil
}

// RedactedDSN renders parameters as a DSN with the password masked, for logs.
func RedactedDSN(cfg *csvload.ConnectionConfig) string {
	mc := baseDriverConfig(cfg)
	if mc.Passwd != "" {
		mc.Passwd = "****"
	}
	return mc.FormatDSN()
}
