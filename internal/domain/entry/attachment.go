package entry

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedImageType = errors.New("only png, jpg, jpeg and gif images are allowed")
	ErrInvalidLinkURL       = errors.New("link must be an absolute http or https URL")
)

// AttachmentKind distinguishes uploaded files from external links
type AttachmentKind string

const (
	AttachmentKindImage AttachmentKind = "image"
	AttachmentKindLink  AttachmentKind = "link"
)

// Category tells whether evidence was captured before or after the trade
type Category string

const (
	CategoryBefore Category = "Before"
	CategoryAfter  Category = "After"
)

var allowedImageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// Attachment is an image or link stored for an entry
type Attachment struct {
	ID         uuid.UUID      `json:"id"`
	EntryID    uuid.UUID      `json:"entry_id"`
	Kind       AttachmentKind `json:"kind"`
	FilePath   string         `json:"file_path,omitempty"`
	LinkURL    string         `json:"link_url,omitempty"`
	Category   Category       `json:"category"`
	UploadedAt time.Time      `json:"uploaded_at"`
}

// ParseCategory maps free text to a category; anything but "After" is "Before".
func ParseCategory(value string) Category {
	if Category(strings.TrimSpace(value)) == CategoryAfter {
		return CategoryAfter
	}
	return CategoryBefore
}

// IsAllowedImage checks the file extension against the supported image types
func IsAllowedImage(filename string) bool {
	_, ok := allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// NewImageAttachment records an uploaded file stored under filePath
func NewImageAttachment(entryID uuid.UUID, filePath string, category Category) *Attachment {
	return &Attachment{
		ID:         uuid.New(),
		EntryID:    entryID,
		Kind:       AttachmentKindImage,
		FilePath:   filePath,
		Category:   category,
		UploadedAt: time.Now().UTC(),
	}
}

// NewLinkAttachment records an external link after validating it
func NewLinkAttachment(entryID uuid.UUID, link string, category Category) (*Attachment, error) {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, ErrInvalidLinkURL
	}

	return &Attachment{
		ID:         uuid.New(),
		EntryID:    entryID,
		Kind:       AttachmentKindLink,
		LinkURL:    parsed.String(),
		Category:   category,
		UploadedAt: time.Now().UTC(),
	}, nil
}
