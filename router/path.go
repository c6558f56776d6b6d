package router

import "strings"

// wildcardSuffix is the suffix required by ServeFiles paths.
const wildcardSuffix = "/*"

func validatePath(path string) {
	switch {
	case len(path) == 0 || !strings.HasPrefix(path, "/"):
		panic("path must begin with '/' in path '" + path + "'")
	}
}

func validateGroupPath(path string) {
	validatePath(path)

	if len(path) > 1 && path[len(path)-1] == '/' {
		panic("group path must not end with '/' in path '" + path + "'")
	}
}

func validateFilesPath(path string) {
	validatePath(path)

	if !strings.HasSuffix(path, wildcardSuffix) {
		panic("path must end with " + wildcardSuffix + " in path '" + path + "'")
	}
}

// joinPath appends path to a group prefix. The root prefix is empty.
func joinPath(prefix, path string) string {
	if prefix == "" {
		return path
	}

	if path == "/" {
		return prefix
	}

	return prefix + path
}
