package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csvload/internal/testinfra"
	"github.com/vvka-141/csvload/pkg/csvload"
)

func TestBuildDriverConfig(t *testing.T) {
	mc, err := BuildDriverConfig(&csvload.ConnectionConfig{
		Host:           "db.example.com",
		Port:           3307,
		Username:       "loader",
		Password:       "secret",
		Database:       "shop",
		TLS:            "skip-verify",
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, "tcp", mc.Net)
	assert.Equal(t, "db.example.com:3307", mc.Addr)
	assert.Equal(t, "loader", mc.User)
	assert.Equal(t, "secret", mc.Passwd)
	assert.Equal(t, "shop", mc.DBName)
	assert.Equal(t, "skip-verify", mc.TLSConfig)
	assert.True(t, mc.MultiStatements)
	assert.Equal(t, 5*time.Second, mc.Timeout)
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    csvload.ConnectionConfig
		wantErr bool
	}{
		{
			name: "full",
			dsn:  "loader:secret@tcp(db.example.com:3307)/shop?tls=true",
			want: csvload.ConnectionConfig{
				Host: "db.example.com", Port: 3307, Username: "loader", Password: "secret",
				Database: "shop", TLS: "true",
			},
		},
		{
			name: "no address uses driver default",
			dsn:  "root@/shop",
			want: csvload.ConnectionConfig{
				Host: "127.0.0.1", Port: 3306, Username: "root", Database: "shop",
			},
		},
		{
			name:    "unix socket rejected",
			dsn:     "root@unix(/tmp/mysql.sock)/shop",
			wantErr: true,
		},
		{
			name:    "garbage",
			dsn:     "not a dsn",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDSN(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, tt.want.Port, got.Port)
			assert.Equal(t, tt.want.Username, got.Username)
			assert.Equal(t, tt.want.Password, got.Password)
			assert.Equal(t, tt.want.Database, got.Database)
			assert.Equal(t, tt.want.TLS, got.TLS)
			assert.Equal(t, csvload.AuthMethodStandard, got.AuthMethod)
		})
	}
}

func TestRedactedDSN(t *testing.T) {
	dsn := RedactedDSN(&csvload.ConnectionConfig{
		Host: "localhost", Port: 3306, Username: "root", Password: "hunter2", Database: "shop",
	})

	assert.NotContains(t, dsn, "hunter2")
	assert.Contains(t, dsn, "root:****@tcp(localhost:3306)/shop")
	assert.Contains(t, dsn, "multiStatements=true")
}

func TestBuildDriverConfig_TLSCA(t *testing.T) {
	bundle, err := testinfra.GenerateCertBundle([]string{"localhost"})
	require.NoError(t, err)
	paths, err := bundle.WriteToDir(t.TempDir())
	require.NoError(t, err)

	mc, err := BuildDriverConfig(&csvload.ConnectionConfig{Host: "localhost", Port: 3306, TLSCA: paths.CACert})
	require.NoError(t, err)
	require.NotNil(t, mc.TLS)
	assert.Equal(t, "localhost", mc.TLS.ServerName)
	assert.NotNil(t, mc.TLS.RootCAs)
}

func TestBuildDriverConfig_TLSCAErrors(t *testing.T) {
	_, err := BuildDriverConfig(&csvload.ConnectionConfig{Host: "h", Port: 1, TLSCA: filepath.Join(t.TempDir(), "missing.pem")})
	assert.ErrorIs(t, err, csvload.ErrInvalidConfig)

	junk := filepath.Join(t.TempDir(), "junk.pem")
	require.NoError(t, os.WriteFile(junk, []byte("not a cert"), 0600))
	_, err = BuildDriverConfig(&csvload.ConnectionConfig{Host: "h", Port: 1, TLSCA: junk})
	assert.ErrorIs(t, err, csvload.ErrInvalidConfig)
}
