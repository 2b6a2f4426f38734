// shared defines the filesystem layout under the output directory
// that the interrogate command and its helper tools agree on.
package shared

import (
	"path/filepath"
)

func TempDirForOutDir(outDir string) (tempPath string) {
	return filepath.Join(outDir, ".temp")
}

func LogFileForOutDir(outDir string) string {
	return filepath.Join(outDir, "interrogate.log")
}

func TraceFileForOutDir(outDir string) string {
	return filepath.Join(outDir, "interrogate.trace")
}

func EnvFileForOutDir(outDir string) string {
	return filepath.Join(outDir, ".interrogate.environment")
}
