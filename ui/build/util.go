package build

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/clchiou/interrogator/ndk"
)

var inList = ndk.InList

// decodeKeyValue splits a key=value string at the first '='.
func decodeKeyValue(str string) (string, string, bool) {
	idx := strings.IndexRune(str, '=')
	if idx == -1 {
		return "", "", false
	}
	return str[:idx], str[idx+1:], true
}

// ensureDirectoriesExist is a shortcut to os.MkdirAll, sending errors
// to the ctx logger.
func ensureDirectoriesExist(ctx Context, dirs ...string) {
	for _, dir := range dirs {
		err := os.MkdirAll(dir, 0777)
		if err != nil {
			ctx.Fatalf("Error creating %s: %q\n", dir, err)
		}
	}
}

// ensureEmptyDirectoriesExist ensures that the specified directories
// exist and are empty.
func ensureEmptyDirectoriesExist(ctx Context, dirs ...string) {
	for _, dir := range dirs {
		err := os.RemoveAll(dir)
		if err != nil {
			ctx.Fatalf("Error removing %s: %q\n", dir, err)
		}
	}
	ensureDirectoriesExist(ctx, dirs...)
}

// writeFile writes content to path, creating any missing parent
// directories and overwriting an existing file.
func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0777)
}

// absPath returns the absolute path for the given path, relying on
// the ctx logger for any errors.
func absPath(ctx Context, p string) string {
	ret, err := filepath.Abs(p)
	if err != nil {
		ctx.Fatalf("Failed to get absolute path: %v", err)
	}
	return ret
}
