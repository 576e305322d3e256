package nativelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDir(t *testing.T) {
	t.Setenv(EnvLogDir, "")
	assert.Equal(t, filepath.Join(".", "logs"), ResolveDir(""))
	assert.Equal(t, "/srv/logs", ResolveDir(" /srv/logs "))

	t.Setenv(EnvLogDir, "/env/logs")
	assert.Equal(t, "/env/logs", ResolveDir("/srv/logs"))
}

func TestWriterRollsDaily(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w, err := NewWriter(dir)
	require.NoError(t, err)

	day := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return day }
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)

	day = day.Add(2 * time.Minute)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "linkpage_2024-03-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(b))

	b, err = os.ReadFile(filepath.Join(dir, "linkpage_2024-03-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(b))
}
