package cover_test

import (
	"testing"

	"github.com/marcelsud/book-catalog/book/cover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	base := "http://s"

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty cover", "", ""},
		{"inline image is returned unchanged", "data:image/jpeg;base64,AAAA", "data:image/jpeg;base64,AAAA"},
		{"absolute url is returned unchanged", "http://x/y.jpg", "http://x/y.jpg"},
		{"absolute https url is returned unchanged", "https://x/y.jpg", "https://x/y.jpg"},
		{"rooted path is appended to the base", "/covers/a.jpg", "http://s/covers/a.jpg"},
		{"bare relative path gets a separator", "a.jpg", "http://s/a.jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cover.Resolve(tc.input, base))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("kinds", func(t *testing.T) {
		assert.Equal(t, cover.Empty, cover.Parse("").Kind())
		assert.Equal(t, cover.Inline, cover.Parse("data:image/png;base64,iVBORw0KGgo=").Kind())
		assert.Equal(t, cover.Reference, cover.Parse("http://x/y.jpg").Kind())
		assert.Equal(t, cover.Reference, cover.Parse("/covers/a.jpg").Kind())
		assert.Equal(t, cover.Reference, cover.Parse("a.jpg").Kind())
	})

	t.Run("inline payload starting with a slash is not a path", func(t *testing.T) {
		// base64 freely produces '/', the inline check must win
		c := cover.Parse("data:image/jpeg;base64,//9j/4AAQSkZJRg==")
		assert.Equal(t, cover.Inline, c.Kind())
		assert.Equal(t, "data:image/jpeg;base64,//9j/4AAQSkZJRg==", c.Resolve("http://s"))
	})
}

func TestDecode(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		data := []byte{0xFF, 0xD8, 0xFF, 0xE0}
		c := cover.EncodeInline("image/jpeg", data)

		require.Equal(t, cover.Inline, c.Kind())

		mimetype, decoded, err := c.Decode()
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mimetype)
		assert.Equal(t, data, decoded)
	})

	t.Run("reference covers do not decode", func(t *testing.T) {
		_, _, err := cover.Parse("/covers/a.jpg").Decode()
		require.Error(t, err)
	})

	t.Run("truncated data uri", func(t *testing.T) {
		_, _, err := cover.Parse("data:image/jpeg;base64").Decode()
		require.Error(t, err)
	})

	t.Run("invalid base64 payload", func(t *testing.T) {
		_, _, err := cover.Parse("data:image/jpeg;base64,not-base64!").Decode()
		require.Error(t, err)
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "empty", cover.Empty.String())
	assert.Equal(t, "inline", cover.Inline.String())
	assert.Equal(t, "reference", cover.Reference.String())
	assert.Equal(t, "unknown", cover.Kind(99).String())
}
