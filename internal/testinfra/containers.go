package testinfra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
)

const (
	MySQLImage    = "mysql:8.4"
	MySQLUser     = "csvload"
	MySQLPassword = "csvload"
	MySQLDatabase = "csvload"

	containerCertDir = "/etc/mysql/certs"
)

// MySQLContainer is a running MySQL server and the DSN that reaches it.
type MySQLContainer struct {
	*tcmysql.MySQLContainer
	DSN string
}

// StartMySQL starts a plain MySQL server.
func StartMySQL(ctx context.Context) (*MySQLContainer, error) {
	return startMySQL(ctx)
}

// StartTLSMySQL starts a MySQL server presenting the bundle's server certificate.
func StartTLSMySQL(ctx context.Context, certPaths *CertPaths) (*MySQLContainer, error) {
	confPath, err := writeTLSConfig(filepath.Dir(certPaths.CACert))
	if err != nil {
		return nil, err
	}

	return startMySQL(ctx,
		tcmysql.WithConfigFile(confPath),
		testcontainers.WithFiles(
			testcontainers.ContainerFile{HostFilePath: certPaths.CACert, ContainerFilePath: containerCertDir + "/ca.pem", FileMode: 0644},
			testcontainers.ContainerFile{HostFilePath: certPaths.ServerCert, ContainerFilePath: containerCertDir + "/server-cert.pem", FileMode: 0644},
			testcontainers.ContainerFile{HostFilePath: certPaths.ServerKey, ContainerFilePath: containerCertDir + "/server-key.pem", FileMode: 0644},
		),
	)
}

func startMySQL(ctx context.Context, opts ...testcontainers.ContainerCustomizer) (*MySQLContainer, error) {
	opts = append([]testcontainers.ContainerCustomizer{
		tcmysql.WithDatabase(MySQLDatabase),
		tcmysql.WithUsername(MySQLUser),
		tcmysql.WithPassword(MySQLPassword),
	}, opts...)

	ctr, err := tcmysql.Run(ctx, MySQLImage, opts...)
	if err != nil {
		return nil, fmt.Errorf("start mysql: %w", err)
	}

	dsn, err := ctr.ConnectionString(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &MySQLContainer{MySQLContainer: ctr, DSN: dsn}, nil
}

func writeTLSConfig(dir string) (string, error) {
	conf := fmt.Sprintf(`[mysqld]
ssl_ca=%[1]s/ca.pem
ssl_cert=%[1]s/server-cert.pem
ssl_key=%[1]s/server-key.pem
`, containerCertDir)

	path := filepath.Join(dir, "tls.cnf")
	if err := os.WriteFile(path, []byte(conf), 0644); err != nil {
		return "", fmt.Errorf("write tls.cnf: %w", err)
	}
	return path, nil
}
