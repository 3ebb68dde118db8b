package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// tokenExpiryWarning is how close to expiry a fresh token triggers a warning.
const tokenExpiryWarning = 5 * time.Minute

// TokenBasedConnector implements the Connector interface for cloud providers
// that authenticate via short-lived tokens (AWS IAM, Azure Entra ID).
// The token is sent as a cleartext password, so TLS defaults to on.
type TokenBasedConnector struct {
	config        *csvload.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        csvload.Logger
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for authentication.
// providerName is used in error/warning messages (e.g., "AWS IAM", "Azure").
func NewTokenBasedConnector(config *csvload.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger csvload.Logger) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		logger:        logger,
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (csvload.DBConnection, error) {
	mc, err := c.driverConfig(ctx)
	if err != nil {
		return nil, err
	}
	return open(ctx, mc, c.config)
}

// driverConfig acquires a token and builds the driver config around it.
func (c *TokenBasedConnector) driverConfig(ctx context.Context) (*mysql.Config, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire %s token: %w", csvload.ErrConnectionFailed, c.providerName, err)
	}

	if left := time.Until(expiresOn); left < tokenExpiryWarning {
		c.logger.Warn("%s token expires in %v", c.providerName, left.Round(time.Second))
	}
	c.logger.Verbose("Acquired token from %s", c.tokenProvider)

	configWithToken := *c.config
	configWithToken.Password = token
	if configWithToken.TLS == "" {
		configWithToken.TLS = "true"
	}

	mc, err := BuildDriverConfig(&configWithToken)
	if err != nil {
		return nil, err
	}
	mc.AllowCleartextPasswords = true
	return mc, nil
}
