package ndk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/blueprint/pathtools"
)

// NDK is a handle to an installed NDK tree. Methods that read the
// installation cache their results, so a handle observes one
// consistent snapshot even if the tree changes underneath it.
type NDK struct {
	root string
	once OncePer
}

// New returns a handle to the NDK rooted at path. The path must
// exist; everything else about the installation is probed lazily.
func New(path string) (*NDK, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("could not find NDK at %s", path)
	}
	return &NDK{root: abs}, nil
}

func (n *NDK) Root() string {
	return n.root
}

// BuildLocalMk returns the entry point of the NDK's make build
// system, the file an interrogation Makefile includes.
func (n *NDK) BuildLocalMk() string {
	return filepath.Join(n.root, "build/core/build-local.mk")
}

func (n *NDK) HasBuildSystem() bool {
	exists, isDir, err := pathtools.OsFs.Exists(n.BuildLocalMk())
	return err == nil && exists && !isDir
}

// Version reports Pkg.Revision from source.properties, or "" for
// releases that predate the file.
func (n *NDK) Version() string {
	return n.once.Once("version", func() interface{} {
		data, err := os.ReadFile(filepath.Join(n.root, "source.properties"))
		if err != nil {
			return ""
		}
		for _, line := range strings.Split(string(data), "\n") {
			fields := strings.SplitN(line, "=", 2)
			if len(fields) != 2 {
				continue
			}
			if strings.TrimSpace(fields[0]) == "Pkg.Revision" {
				return strings.TrimSpace(fields[1])
			}
		}
		return ""
	}).(string)
}

// Platforms lists the android-N platform names the installation
// ships, sorted by API level.
func (n *NDK) Platforms() []string {
	return n.once.OnceStringSlice("platforms", func() []string {
		matches, _, err := pathtools.OsFs.Glob(filepath.Join(n.root, "platforms/android-*"), nil)
		if err != nil {
			return nil
		}
		var levels []int
		for _, m := range matches {
			level, err := ParsePlatform(filepath.Base(m))
			if err != nil {
				continue
			}
			levels = append(levels, level)
		}
		sort.Ints(levels)
		names := make([]string, 0, len(levels))
		for _, level := range levels {
			names = append(names, PlatformName(level))
		}
		return names
	})
}
