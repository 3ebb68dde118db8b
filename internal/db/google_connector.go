package db

import (
	"context"
	"fmt"
	"net"
	"sync"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// cloudSQLNet is the driver network name routed through the Cloud SQL dialer.
const cloudSQLNet = "cloudsqlconn"

var (
	registerOnce sync.Once
	dialerMu     sync.RWMutex
	activeDialer *cloudsqlconn.Dialer
)

// registerCloudSQLNet installs the dial hook once per process. The hook uses
// whichever dialer the current connection installed.
func registerCloudSQLNet() {
	registerOnce.Do(func() {
		mysql.RegisterDialContext(cloudSQLNet, func(ctx context.Context, instance string) (net.Conn, error) {
			dialerMu.RLock()
			d := activeDialer
			dialerMu.RUnlock()
			if d == nil {
				return nil, fmt.Errorf("cloud SQL dialer is closed")
			}
			return d.Dial(ctx, instance)
		})
	})
}

// GoogleCloudSQLConnector implements the Connector interface for Google Cloud SQL
// for MySQL using IAM database authentication via the Cloud SQL Go Connector.
// The returned connection closes the dialer when it is closed.
type GoogleCloudSQLConnector struct {
	config   *csvload.ConnectionConfig
	instance string
}

// NewGoogleCloudSQLConnector creates a connector for Google Cloud SQL IAM authentication.
// instance is the instance connection name in format: project:region:instance
func NewGoogleCloudSQLConnector(config *csvload.ConnectionConfig, instance string) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{
		config:   config,
		instance: instance,
	}
}

// Connect opens a handle whose sessions are dialed by cloudsqlconn. TLS and
// the IAM login are handled by the dialer, so the driver TLS setting is ignored.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (csvload.DBConnection, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Cloud SQL dialer: %w", csvload.ErrConnectionFailed, err)
	}

	registerCloudSQLNet()
	dialerMu.Lock()
	activeDialer = dialer
	dialerMu.Unlock()

	db, err := open(ctx, c.driverConfig(), c.config)
	if err != nil {
		releaseDialer(dialer)
		return nil, err
	}
	return &dialerConn{DB: db, dialer: dialer}, nil
}

func (c *GoogleCloudSQLConnector) driverConfig() *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.config.Username
	mc.Net = cloudSQLNet
	mc.Addr = c.instance
	mc.DBName = c.config.Database
	mc.MultiStatements = true
	mc.AllowCleartextPasswords = true
	return mc
}

func releaseDialer(d *cloudsqlconn.Dialer) {
	dialerMu.Lock()
	if activeDialer == d {
		activeDialer = nil
	}
	dialerMu.Unlock()
	d.Close()
}

// dialerConn ties the Cloud SQL dialer lifetime to the database handle.
type dialerConn struct {
	*sqlx.DB
	dialer *cloudsqlconn.Dialer
}

func (c *dialerConn) Close() error {
	err := c.DB.Close()
	releaseDialer(c.dialer)
	return err
}
