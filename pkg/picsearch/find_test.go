package picsearch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel string) string {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	return p
}

func testTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{
		"a.png", "b.jpg", "c.txt", "d.JPG", "e.webp", "f.bmp",
		"sub/g.jpeg", "sub/deeper/h.png", ".hidden/i.png", "sub/.j.png",
	} {
		touch(t, root, f)
	}
	return root
}

func TestFind(t *testing.T) {
	root := testTree(t)

	r, err := Find(context.Background(), &Config{Dir: root, Formats: DefaultFormats()})
	require.NoError(t, err)
	assert.False(t, r.Stopped)
	assert.Equal(t, []string{
		filepath.Join(root, ".hidden/i.png"),
		filepath.Join(root, "a.png"),
		filepath.Join(root, "b.jpg"),
		filepath.Join(root, "sub/.j.png"),
		filepath.Join(root, "sub/deeper/h.png"),
		filepath.Join(root, "sub/g.jpeg"),
	}, r.Paths)
}

func TestFindSkipHidden(t *testing.T) {
	root := testTree(t)

	r, err := Find(context.Background(), &Config{Dir: root, Formats: DefaultFormats(), SkipHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.png"),
		filepath.Join(root, "b.jpg"),
		filepath.Join(root, "sub/deeper/h.png"),
		filepath.Join(root, "sub/g.jpeg"),
	}, r.Paths)
}

func TestFindFormats(t *testing.T) {
	root := testTree(t)

	r, err := Find(context.Background(), &Config{Dir: root, Formats: Formats{BMP: true, WebP: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "e.webp"),
		filepath.Join(root, "f.bmp"),
	}, r.Paths)

	r, err = Find(context.Background(), &Config{Dir: root})
	require.NoError(t, err)
	assert.Empty(t, r.Paths)
}

func TestFindNotDir(t *testing.T) {
	root := testTree(t)

	for _, dir := range []string{filepath.Join(root, "missing"), filepath.Join(root, "a.png")} {
		_, err := Find(context.Background(), &Config{Dir: dir, Formats: DefaultFormats()})
		assert.True(t, errors.Is(err, ErrNotDir), "%s: got %v", dir, err)
	}
}

func TestFindStopped(t *testing.T) {
	root := testTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := Find(ctx, &Config{Dir: root, Formats: DefaultFormats()})
	require.NoError(t, err)
	assert.True(t, r.Stopped)
	assert.Empty(t, r.Paths)
}
