package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ShouldServeStaticAndSampleFiles(t *testing.T) {
	root := t.TempDir()
	samples := filepath.Join(root, "data")
	require.NoError(t, os.Mkdir(samples, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib.wasm"), []byte("\x00asm"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(samples, "samples.csv"), []byte("1,2,3\n"), 0o644))

	h, err := NewConn(&httpConn{root: root, samplesDir: samples}).handler()
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/lib.wasm")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/wasm", resp.Header.Get("Content-Type"))

	resp, err = http.Get(srv.URL + "/samples/samples.csv")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "1,2,3\n", string(body))

	resp, err = http.Get(srv.URL + "/samples/missing.csv")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
