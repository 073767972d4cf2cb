package storage

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.pdf", "evil.pdf"},
		{"my file (1).pdf", "my_file__1_.pdf"},
		{"...", "file"},
		{"", "file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestManager_StoreAndRetrieve(t *testing.T) {
	m, err := NewManager(t.TempDir(), time.Hour, time.Minute, discardLogger())
	require.NoError(t, err)

	name, size, err := m.Store("doc.pdf", strings.NewReader("%PDF-1.4 content"))
	require.NoError(t, err)
	assert.Equal(t, "doc.pdf", name)
	assert.Equal(t, int64(16), size)

	assert.True(t, m.Exists("doc.pdf"))
	path, ok := m.Path("doc.pdf")
	require.True(t, ok)
	assert.NotEmpty(t, path)

	names, err := m.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"doc.pdf"}, names)
}

func TestManager_ListOnlyPDFs(t *testing.T) {
	m, err := NewManager(t.TempDir(), time.Hour, time.Minute, discardLogger())
	require.NoError(t, err)

	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt"} {
		_, _, err := m.Store(name, strings.NewReader("x"))
		require.NoError(t, err)
	}

	names, err := m.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.PDF", "b.pdf"}, names)
}

func TestManager_Delete(t *testing.T) {
	m, err := NewManager(t.TempDir(), time.Hour, time.Minute, discardLogger())
	require.NoError(t, err)

	_, _, err = m.Store("doc.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, m.Delete("doc.pdf"))
	assert.False(t, m.Exists("doc.pdf"))

	err = m.Delete("doc.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_CleanupExpired(t *testing.T) {
	current := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	m, err := NewManager(t.TempDir(), time.Hour, time.Minute, discardLogger(),
		WithClock(func() time.Time { return current }))
	require.NoError(t, err)

	_, _, err = m.Store("old.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	current = current.Add(30 * time.Minute)
	_, _, err = m.Store("fresh.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	// Half an hour later "old.pdf" is past the one hour max age.
	current = current.Add(31 * time.Minute)
	m.CleanupExpired()

	assert.False(t, m.Exists("old.pdf"))
	assert.True(t, m.Exists("fresh.pdf"))
}
