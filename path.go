package pattern

import "strings"

// Normalize returns the canonical form of a pattern or candidate path:
// an empty path becomes "/", "*" and "/*" become "/*", a missing leading
// slash is added and trailing slashes after the root are removed.
func Normalize(path string) string {
	switch path {
	case "":
		return "/"
	case "*", "/*":
		return "/*"
	}

	if path[0] != '/' {
		path = "/" + path
	}

	end := len(path)
	for end > 1 && path[end-1] == '/' {
		end--
	}

	return path[:end]
}

// splitPath returns the raw segments of a normalized path. The root path
// has none.
func splitPath(path string) []string {
	if path == "/" {
		return []string{}
	}

	return strings.Split(path[1:], "/")
}
