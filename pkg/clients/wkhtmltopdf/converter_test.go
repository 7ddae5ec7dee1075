package wkhtmltopdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeScript = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "wkhtmltopdf 0.12.6"
  exit 0
fi
cat > /dev/null
printf '%%PDF-1.4 fake'
`

func fakeBinary(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a unix shell")
	}
	path := filepath.Join(t.TempDir(), "wkhtmltopdf")
	require.NoError(t, os.WriteFile(path, []byte(fakeScript), 0o755))
	return path
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestNew_MissingBinary(t *testing.T) {
	_, err := New("/nonexistent/wkhtmltopdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/wkhtmltopdf")
}

func TestCheckAndConvert(t *testing.T) {
	c, err := New(fakeBinary(t))
	require.NoError(t, err)

	require.NoError(t, c.Check(context.Background()))

	doc, err := c.Convert(context.Background(), []byte("<html></html>"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
}

func TestCheck_ConcurrentWithConvert(t *testing.T) {
	c, err := New(fakeBinary(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- c.Check(context.Background())
		}()
		go func() {
			defer wg.Done()
			_, err := c.Convert(context.Background(), []byte("<p>x</p>"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
