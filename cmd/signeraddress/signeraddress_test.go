package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/runonflux/fluxsign/config"
	"github.com/runonflux/fluxsign/crypto"
	"github.com/stretchr/testify/require"
)

func TestPrintAddress(t *testing.T) {
	for _, key := range []string{"PRIVATE_KEY", "MESSAGE_PREFIX", "ADDRESS_VERSION", "FLUXSIGN_ENV_FILE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	dir := t.TempDir()
	write := func(name string, contents string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
		return path
	}
	run := func(path string) (string, error) {
		stdout := &bytes.Buffer{}
		err := newApp(stdout).Run([]string{"signeraddress", "--env-file", path})
		return stdout.String(), err
	}

	out, err := run(write("btc.env", "PRIVATE_KEY=KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn\n"))
	require.NoError(t, err)
	require.Equal(t,
		"Public Key: 0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798\n"+
			"Address: 1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH\n",
		out,
	)

	out, err = run(write("flux.env", "PRIVATE_KEY=L4rK1yDtCWekvXuE6oXD9jCYfFNV2cWRpVuPLBcCU2z8TrisoyY1\nADDRESS_VERSION=1cb8\n"))
	require.NoError(t, err)
	require.Contains(t, out, "Address: t1XvUB6WhsG7m5Rn1ZTwwQ54odhca3jRKPQ\n")

	out, err = run(write("missing.env", "ADDRESS_VERSION=00\n"))
	require.True(t, errors.Is(err, config.ErrConfiguration))
	require.Empty(t, out)

	out, err = run(write("bad.env", "PRIVATE_KEY=nope\n"))
	require.True(t, errors.Is(err, crypto.ErrInvalidKeyFormat))
	require.Empty(t, out)
}
