package blobs

import "strings"

// MaxBlobSize is the largest accepted image upload (6MB).
const MaxBlobSize = 6 * 1024 * 1024

// extensions maps accepted MIME types to on-disk file extensions.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// NormalizeMimeType lowercases the MIME type, strips parameters such as
// charset, and maps common aliases (image/jpg → image/jpeg).
func NormalizeMimeType(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "image/jpg" {
		return "image/jpeg"
	}
	return mimeType
}

// IsAllowedMimeType reports whether the (normalized) MIME type is an accepted
// image format.
func IsAllowedMimeType(mimeType string) bool {
	_, ok := extensions[NormalizeMimeType(mimeType)]
	return ok
}

// ExtensionFor returns the file extension for an accepted MIME type, or an
// empty string for anything else.
func ExtensionFor(mimeType string) string {
	return extensions[NormalizeMimeType(mimeType)]
}
