package utils_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/esimov/isoline/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProgressIndicator_ShouldPrintStopMessage(t *testing.T) {
	var out syncBuffer
	ind := utils.NewProgressIndicator("Triangulating...", time.Millisecond).SetWriter(&out)
	ind.StopMsg = "done"

	ind.Start()
	ind.Start()
	time.Sleep(10 * time.Millisecond)
	ind.Stop()
	ind.Stop()

	got := out.String()
	assert.Contains(t, got, "Triangulating...")
	assert.True(t, strings.HasSuffix(got, "done"), "stop message must be the last output: %q", got)

	// No frame is printed once stopped.
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, got, out.String())
}

func TestDetectContentType(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><circle cx="1" cy="2" r="1"/></svg>`)
	assert.True(t, utils.IsContentType(svg, "image/svg+xml"))
	assert.False(t, utils.IsContentType(svg, "text/csv", "application/json"))

	geo := []byte(`{"type":"FeatureCollection","features":[]}`)
	assert.True(t, utils.IsContentType(geo, "application/geo+json", "application/json"))

	dir := t.TempDir()
	name := filepath.Join(dir, "samples.svg")
	require.NoError(t, os.WriteFile(name, svg, 0o644))
	mime, err := utils.DetectFileContentType(name)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mime, "image/svg+xml"), mime)

	_, err = utils.DetectFileContentType(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
