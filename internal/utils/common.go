// Package utils provides shared utility functions used across multiple packages.
package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// NormalizeName lowercases and trims a config keyword such as a format name.
func NormalizeName(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// EnsureExtension appends ext to path when path has no extension at all.
func EnsureExtension(path, ext string) string {
	if path == "" || ext == "" {
		return path
	}
	if filepath.Ext(path) != "" {
		return path
	}
	return path + ext
}

// JSONPointerToPath converts a JSON Pointer (RFC 6901) to a dot-notation path.
// For example, "#/foo/bar/0/baz" becomes "foo.bar[0].baz".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		// ~1 is "/" and ~0 is "~"
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
