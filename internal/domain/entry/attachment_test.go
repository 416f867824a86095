package entry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryAfter, ParseCategory("After"))
	assert.Equal(t, CategoryBefore, ParseCategory("Before"))
	assert.Equal(t, CategoryBefore, ParseCategory(""))
	assert.Equal(t, CategoryBefore, ParseCategory("during"))
}

func TestIsAllowedImage(t *testing.T) {
	for _, name := range []string{"chart.png", "chart.JPG", "a.jpeg", "b.gif"} {
		assert.True(t, IsAllowedImage(name), name)
	}
	for _, name := range []string{"chart.bmp", "notes.txt", "noext", "evil.png.exe"} {
		assert.False(t, IsAllowedImage(name), name)
	}
}

func TestNewLinkAttachment(t *testing.T) {
	entryID := uuid.New()

	t.Run("Valid", func(t *testing.T) {
		a, err := NewLinkAttachment(entryID, " https://www.tradingview.com/x/abc/ ", CategoryAfter)

		require.NoError(t, err)
		assert.Equal(t, AttachmentKindLink, a.Kind)
		assert.Equal(t, "https://www.tradingview.com/x/abc/", a.LinkURL)
		assert.Equal(t, CategoryAfter, a.Category)
		assert.Empty(t, a.FilePath)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, link := range []string{"", "not a url", "ftp://host/file", "/relative/path"} {
			_, err := NewLinkAttachment(entryID, link, CategoryBefore)
			assert.ErrorIs(t, err, ErrInvalidLinkURL, link)
		}
	})
}

func TestNewImageAttachment(t *testing.T) {
	entryID := uuid.New()
	a := NewImageAttachment(entryID, "3f2a_chart.png", CategoryBefore)

	assert.Equal(t, AttachmentKindImage, a.Kind)
	assert.Equal(t, entryID, a.EntryID)
	assert.Equal(t, "3f2a_chart.png", a.FilePath)
	assert.False(t, a.UploadedAt.IsZero())
}
