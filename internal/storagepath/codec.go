// Package storagepath derives deterministic Cloud Storage paths for a user's
// diary images and recovers paths from previously issued download URLs.
package storagepath

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultExtension is used for every uploaded diary image; images are
// re-encoded as JPEG before upload.
const DefaultExtension = "jpg"

// marker separates the bucket prefix from the escaped object path in a
// Firebase download URL.
const marker = "/o/"

// Build returns the storage path for the index-th image of a user's entry,
// e.g. users/abc123/images/2024-04-05_0.jpg. Paths are collision-free for
// distinct (userID, date, index) triples.
func Build(userID, date string, index int) string {
	return BuildExt(userID, date, index, DefaultExtension)
}

// BuildExt is Build with an explicit file extension.
func BuildExt(userID, date string, index int, extension string) string {
	return fmt.Sprintf("users/%s/images/%s_%d.%s", userID, date, index, extension)
}

// Extract recovers the storage path embedded in a download URL: the segment
// between the "/o/" marker and the query string, percent-decoded.
//
// It returns "" for anything that does not match that shape. Callers treat ""
// as "nothing to delete" rather than an error, so a malformed URL in an old
// entry never blocks deleting the entry itself.
func Extract(accessURL string) string {
	u, err := url.Parse(accessURL)
	if err != nil {
		return ""
	}

	// EscapedPath keeps the %2F separators inside the object path intact;
	// u.Path would already have decoded them into slashes.
	escaped := u.EscapedPath()
	i := strings.Index(escaped, marker)
	if i < 0 {
		return ""
	}

	encoded := escaped[i+len(marker):]
	if encoded == "" {
		return ""
	}

	path, err := url.PathUnescape(encoded)
	if err != nil {
		return ""
	}
	return path
}
