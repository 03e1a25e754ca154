package lakepath

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizePath trims surrounding whitespace and then leading and trailing
// slashes. An empty result means the root.
func NormalizePath(p string) string {
	return strings.Trim(strings.TrimSpace(p), "/")
}

// SplitPath splits a normalized path into its parent directory and leaf
// name. The parent of a top-level entry is "".
func SplitPath(p string) (dir, name string) {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+1:]
}

// Segments splits a normalized path into its slash-separated segments.
// The root has no segments.
func Segments(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// IsValidPath validates that a path string can be handed to a storage backend.
// It checks that the path:
//   - is not empty, ".", or "/"
//   - is relative (does not start with "/")
//   - does not end with "/"
//   - does not contain ".." (path traversal)
//   - does not contain "//" (empty segments)
//   - does not contain a backslash
//   - is valid UTF-8
//   - does not contain "." segments
//   - does not contain null bytes or control characters
//
// Unlike object keys, lake paths may contain spaces.
func IsValidPath(p string) bool {
	if p == "" || p == "/" || p == "." {
		return false
	}

	if p[0] == '/' || strings.HasSuffix(p, "/") {
		return false
	}

	if strings.Contains(p, "//") || strings.ContainsRune(p, '\\') {
		return false
	}

	if !utf8.ValidString(p) {
		return false
	}

	for _, seg := range strings.Split(p, "/") {
		if seg == "." || seg == ".." {
			return false
		}
	}

	for _, r := range p {
		if r < 0x20 || r == 0x7f || (unicode.IsSpace(r) && r != ' ') {
			return false
		}
	}

	return true
}

// IsValidSegment reports whether s is a single valid path segment, as used
// for container names.
func IsValidSegment(s string) bool {
	return IsValidPath(s) && !strings.Contains(s, "/")
}

// EscapeLikePattern escapes the SQL LIKE wildcards (%, _) and the escape
// character itself so p matches literally.
func EscapeLikePattern(p string) string {
	p = strings.ReplaceAll(p, `\`, `\\`)
	p = strings.ReplaceAll(p, `%`, `\%`)
	p = strings.ReplaceAll(p, `_`, `\_`)
	return p
}
