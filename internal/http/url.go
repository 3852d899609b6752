package http

import "strings"

// JoinURL joins base and path with exactly one separator. The path is used
// verbatim otherwise, so a pre-encoded query string passes through unchanged.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
