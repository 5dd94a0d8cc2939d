package tlsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDevCertificatesLoadable(t *testing.T) {
	bundle, err := GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, t.TempDir(), time.Hour)
	require.NoError(t, err)

	for _, path := range []string{bundle.CAFile, bundle.CertFile, bundle.KeyFile} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), path)
	}

	server, err := ServerCredentials(bundle.CertFile, bundle.KeyFile)
	require.NoError(t, err)
	assert.Equal(t, "tls", server.Info().SecurityProtocol)

	client, err := ClientCredentials(bundle.CAFile, "localhost")
	require.NoError(t, err)
	assert.Equal(t, "localhost", client.Info().ServerName)
}

func TestServerCredentialsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := ServerCredentials(filepath.Join(dir, "a.pem"), filepath.Join(dir, "b.pem"))
	assert.ErrorContains(t, err, "load server key pair")
}

func TestClientCredentialsRejectsEmptyCA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))

	_, err := ClientCredentials(path, "")
	assert.ErrorContains(t, err, "no CA certificate")
}

func TestClientCredentialsSystemRoots(t *testing.T) {
	creds, err := ClientCredentials("", "")
	require.NoError(t, err)
	assert.NotNil(t, creds)
}
