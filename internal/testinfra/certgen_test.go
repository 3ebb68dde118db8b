package testinfra

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCertBundle(t *testing.T) {
	bundle, err := GenerateCertBundle([]string{"localhost", "127.0.0.1"})
	require.NoError(t, err)

	ca := parseCert(t, bundle.CACert)
	server := parseCert(t, bundle.ServerCert)

	assert.True(t, ca.IsCA)
	assert.Equal(t, "csvload-test-ca", ca.Subject.CommonName)

	assert.False(t, server.IsCA)
	assert.Contains(t, server.DNSNames, "localhost")
	require.Len(t, server.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", server.IPAddresses[0].String())

	pool := x509.NewCertPool()
	pool.AddCert(ca)
	_, err = server.Verify(x509.VerifyOptions{
		DNSName:   "localhost",
		Roots:     pool,
		KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	})
	assert.NoError(t, err)

	block, _ := pem.Decode(bundle.ServerKey)
	require.NotNil(t, block)
	_, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	assert.NoError(t, err)
}

func TestCertBundle_WriteToDir(t *testing.T) {
	bundle, err := GenerateCertBundle([]string{"localhost"})
	require.NoError(t, err)

	paths, err := bundle.WriteToDir(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{paths.CACert, paths.ServerCert, paths.ServerKey} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func parseCert(t *testing.T, pemData []byte) *x509.Certificate {
	t.Helper()
	block, _ := pem.Decode(pemData)
	require.NotNil(t, block, "failed to decode PEM")
	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	return cert
}
