package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxBaseNameLength = 100

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// StoredFilename builds a unique storage name for an uploaded file in the
// format <noteID>_<unix-nanos>_<8 hex>_<sanitized original name>.
func StoredFilename(noteID uint64, original string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%d_%s_%s", noteID, now.UnixNano(), suffix, SanitizeFilename(original))
}

// SanitizeFilename strips directories and replaces characters outside
// [A-Za-z0-9._-] so the name is safe as a single path element.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	if len(name) > maxBaseNameLength {
		name = name[len(name)-maxBaseNameLength:]
	}
	return name
}
