package ndk

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/google/blueprint/pathtools"
)

// Environment variables commonly pointing at an NDK installation, in
// the order they are consulted.
var ndkEnvVars = []string{"ANDROID_NDK_HOME", "ANDROID_NDK_ROOT", "NDK_HOME"}

// Environment variables pointing at an SDK root, which may carry NDKs
// under ndk/<version> or ndk-bundle.
var sdkEnvVars = []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"}

// FindNDK locates an NDK installation when the caller did not name
// one: first the NDK environment variables, then SDK-managed installs
// (newest version wins), then an ndk-build on PATH. getenv is
// injected so lookups can be recorded as environment dependencies.
func FindNDK(getenv func(string) string, fs pathtools.FileSystem) (string, error) {
	for _, env := range ndkEnvVars {
		if path := getenv(env); path != "" {
			return path, nil
		}
	}

	var sdkRoots []string
	for _, env := range sdkEnvVars {
		if path := getenv(env); path != "" {
			sdkRoots = append(sdkRoots, path)
		}
	}
	if sdk := defaultSdkFolder(getenv); sdk != "" {
		sdkRoots = append(sdkRoots, sdk)
	}

	for _, sdk := range sdkRoots {
		matches, _, err := fs.Glob(filepath.Join(sdk, "ndk/*"), nil)
		if err == nil {
			var installs []string
			for _, m := range matches {
				if isDir, err := fs.IsDir(m); err == nil && isDir {
					installs = append(installs, m)
				}
			}
			if len(installs) > 0 {
				sort.Sort(byNdkVersion(installs))
				return installs[len(installs)-1], nil
			}
		}

		bundle := filepath.Join(sdk, "ndk-bundle")
		if exists, isDir, err := fs.Exists(bundle); err == nil && exists && isDir {
			return bundle, nil
		}
	}

	if path, err := exec.LookPath("ndk-build"); err == nil {
		return filepath.Dir(path), nil
	}

	return "", fmt.Errorf("could not find an NDK installation. Set one of %s", strings.Join(ndkEnvVars, ", "))
}

// defaultSdkFolder is where Android Studio installs the SDK when
// nothing in the environment says otherwise.
func defaultSdkFolder(getenv func(string) string) string {
	home := getenv("HOME")
	if home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Android", "sdk")
	case "linux":
		return filepath.Join(home, "Android", "Sdk")
	}
	return ""
}

// SDK-managed NDKs live in directories named by dotted decimal
// version, e.g. ndk/21.4.7075529.
type byNdkVersion []string

func (s byNdkVersion) Len() int      { return len(s) }
func (s byNdkVersion) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byNdkVersion) Less(i, j int) bool {
	return compareNdkVersions(filepath.Base(s[i]), filepath.Base(s[j])) < 0
}

func compareNdkVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr != nil || berr != nil {
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
			continue
		}
		if an != bn {
			return an - bn
		}
	}
	return len(as) - len(bs)
}
