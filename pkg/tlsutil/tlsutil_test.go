package tlsutil

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerAndClientConfig(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile, err := WriteSelfSigned([]string{"localhost", "127.0.0.1"}, dir)
	require.NoError(t, err)

	server, err := ServerConfig(certFile, keyFile)
	require.NoError(t, err)
	assert.Len(t, server.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), server.MinVersion)

	client, err := ClientConfig(certFile)
	require.NoError(t, err)
	require.NotNil(t, client.RootCAs)
}

func TestClientConfig_SystemRoots(t *testing.T) {
	cfg, err := ClientConfig("")
	require.NoError(t, err)
	assert.Nil(t, cfg.RootCAs)
}

func TestClientConfig_Errors(t *testing.T) {
	_, err := ClientConfig(filepath.Join(t.TempDir(), "missing.pem"))
	assert.ErrorContains(t, err, "read CA file")

	garbage := filepath.Join(t.TempDir(), "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a certificate"), 0o600))
	_, err = ClientConfig(garbage)
	assert.ErrorContains(t, err, "no certificate found")
}

func TestServerConfig_MissingFiles(t *testing.T) {
	_, err := ServerConfig("nope.pem", "nope-key.pem")
	assert.ErrorContains(t, err, "load server key pair")
}
