package picsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		index int
		ok    bool
	}{
		{"click right half", PointerRelease{X: 151}, 1, true},
		{"click at middle", PointerRelease{X: 150}, 2, true},
		{"click left half", PointerRelease{X: 10}, 2, true},
		{"right arrow", Key{Name: "right"}, 1, true},
		{"browser right arrow", Key{Name: "ArrowRight"}, 1, true},
		{"left arrow", Key{Name: "left"}, 2, true},
		{"other key", Key{Name: "q"}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, _, _ := newTestViewer()
			v.LoadSet([]string{"a.png", "b.png", "c.png"})

			ok, err := v.Handle(tc.event)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.index, v.Index())
		})
	}
}

func TestHandleDoubleClick(t *testing.T) {
	v, s, d := newTestViewer()
	v.LoadSet([]string{"a.png", "b.png"})

	ok, err := v.Handle(DoubleClick{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.fullscreen)
	assert.Equal(t, 0, v.Index())
	assert.Empty(t, d.calls)
}

func TestHandleEmpty(t *testing.T) {
	v, _, _ := newTestViewer()
	for _, e := range []Event{PointerRelease{X: 299}, PointerRelease{X: 0}, Key{Name: "right"}, Key{Name: "left"}} {
		ok, err := v.Handle(e)
		assert.NoError(t, err)
		assert.False(t, ok, "%#v", e)
	}
}
