package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clchiou/interrogator/ndk"
)

// fakeNdk builds a directory that passes for an NDK installation:
// the build system entry point, a version file, and two platforms.
func fakeNdk(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := writeFile(filepath.Join(root, "build/core/build-local.mk"), "# build-local.mk\n"); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(filepath.Join(root, "source.properties"),
		"Pkg.Desc = Android NDK\nPkg.Revision = 17.2.4988734\n"); err != nil {
		t.Fatal(err)
	}
	for _, platform := range []string{"android-21", "android-24"} {
		if err := os.MkdirAll(filepath.Join(root, "platforms", platform), 0777); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)

	config := NewConfig(testContext(), "-n", root)

	if got := config.BuildType(); got != ndk.StaticLibrary {
		t.Errorf("expected build type %v got %v", ndk.StaticLibrary, got)
	}
	if got := config.BuildTool(); got != "make" {
		t.Errorf("expected build tool make got %q", got)
	}
	if got := config.Format(); got != "text" {
		t.Errorf("expected format text got %q", got)
	}
	if got := config.OutDir(); got != "" {
		t.Errorf("expected no out dir, got %q", got)
	}
	if got := config.TempDir(); got != "" {
		t.Errorf("expected no temp dir, got %q", got)
	}
	if len(config.AndroidVars()) != 0 || len(config.ApplicationVars()) != 0 {
		t.Errorf("expected no variables, got %v and %v",
			config.AndroidVars(), config.ApplicationVars())
	}
	if got := config.NDK().Root(); got != root {
		t.Errorf("expected NDK root %q got %q", root, got)
	}
}

func TestNewConfigScrubsEnvironment(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	t.Setenv("MAKEFLAGS", "-j8")
	t.Setenv("MAKELEVEL", "2")
	t.Setenv("NDK_PROJECT_PATH", "/somewhere/else")
	t.Setenv("LC_ALL", "C")
	root := fakeNdk(t)

	config := NewConfig(testContext(), "-n", root)

	env := config.Environment()
	for _, key := range []string{"MAKEFLAGS", "MAKELEVEL", "NDK_PROJECT_PATH", "LC_ALL"} {
		if _, ok := env.Get(key); ok {
			t.Errorf("expected %s to be scrubbed from the environment", key)
		}
	}
	if got, _ := env.Get("LANG"); got != "en_US.UTF-8" {
		t.Errorf("expected LANG en_US.UTF-8 got %q", got)
	}
	if got, _ := env.Get("LC_MESSAGES"); got != "en_US.UTF-8" {
		t.Errorf("expected LC_MESSAGES en_US.UTF-8 got %q", got)
	}
}

func TestNewConfigSettings(t *testing.T) {
	root := fakeNdk(t)
	t.Setenv("TEST_NDK_DIR", root)
	settings := writeSettings(t, `ndk: $(TEST_NDK_DIR)
build_tool: gmake
android_vars:
  LOCAL_ARM_MODE: arm
application_vars:
  APP_STL: c++_static
`)

	config := NewConfig(testContext(), "-s", settings)

	if got := config.NDK().Root(); got != root {
		t.Errorf("expected NDK root %q got %q", root, got)
	}
	if got := config.BuildTool(); got != "gmake" {
		t.Errorf("expected build tool gmake got %q", got)
	}
	if got := config.AndroidVars()["LOCAL_ARM_MODE"]; got != "arm" {
		t.Errorf("expected LOCAL_ARM_MODE arm got %q", got)
	}
	if got := config.ApplicationVars()["APP_STL"]; got != "c++_static" {
		t.Errorf("expected APP_STL c++_static got %q", got)
	}
	if got, ok := config.EnvDeps()["TEST_NDK_DIR"]; !ok || got != root {
		t.Errorf("expected TEST_NDK_DIR %q as environment dependency, got %q", root, got)
	}
}

func TestNewConfigSettingsFromEnv(t *testing.T) {
	root := fakeNdk(t)
	settings := writeSettings(t, "build_tool: gmake\n")
	t.Setenv("INTERROGATE_SETTINGS", settings)

	config := NewConfig(testContext(), "-n", root)

	if got := config.BuildTool(); got != "gmake" {
		t.Errorf("expected build tool gmake got %q", got)
	}
}

func TestNewConfigMissingSettingsFlag(t *testing.T) {
	root := fakeNdk(t)
	defer func() {
		if recover() == nil {
			t.Error("expected fatal error for a mistyped --settings path")
		}
	}()
	NewConfig(testContext(), "-n", root, "-s", filepath.Join(t.TempDir(), "no-such-settings"))
}

func TestNewConfigMissingSettingsEnv(t *testing.T) {
	root := fakeNdk(t)
	t.Setenv("INTERROGATE_SETTINGS", filepath.Join(t.TempDir(), "no-such-settings"))

	// A stale environment variable must not keep the tool from running.
	config := NewConfig(testContext(), "-n", root)

	if got := config.BuildTool(); got != "make" {
		t.Errorf("expected default build tool make got %q", got)
	}
}

func TestNewConfigVarPrecedence(t *testing.T) {
	root := fakeNdk(t)
	settings := writeSettings(t, "application_vars:\n  APP_STL: from_settings\n")

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "settings",
			args: []string{"-s", settings, "-n", root},
			want: "from_settings",
		},
		{
			name: "sugar over settings",
			args: []string{"-s", settings, "-n", root, "--stl", "from_sugar"},
			want: "from_sugar",
		},
		{
			name: "flag over sugar",
			args: []string{"-s", settings, "-n", root, "--stl", "from_sugar",
				"-V", "APP_STL:from_flag"},
			want: "from_flag",
		},
		{
			name: "positional over flag",
			args: []string{"-s", settings, "-n", root, "--stl", "from_sugar",
				"-V", "APP_STL:from_flag", "APP_STL=from_positional"},
			want: "from_positional",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			config := NewConfig(testContext(), testCase.args...)
			if got := config.ApplicationVars()["APP_STL"]; got != testCase.want {
				t.Errorf("expected APP_STL %q got %q", testCase.want, got)
			}
		})
	}
}

func TestNewConfigPositionalRouting(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)

	config := NewConfig(testContext(), "-n", root,
		"LOCAL_CFLAGS=-g", "APP_ABI=x86", "NDK_TOOLCHAIN=clang")

	if got := config.AndroidVars()["LOCAL_CFLAGS"]; got != "-g" {
		t.Errorf("expected LOCAL_CFLAGS -g got %q", got)
	}
	if len(config.AndroidVars()) != 1 {
		t.Errorf("expected only LOCAL_* in Android vars, got %v", config.AndroidVars())
	}
	if got := config.ApplicationVars()["APP_ABI"]; got != "x86" {
		t.Errorf("expected APP_ABI x86 got %q", got)
	}
	if got := config.ApplicationVars()["NDK_TOOLCHAIN"]; got != "clang" {
		t.Errorf("expected NDK_TOOLCHAIN clang got %q", got)
	}
}

func TestNewConfigBadPositional(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)
	defer func() {
		if recover() == nil {
			t.Error("expected fatal error for positional without =")
		}
	}()
	NewConfig(testContext(), "-n", root, "garbage")
}

func TestNewConfigMissingNdk(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	defer func() {
		if recover() == nil {
			t.Error("expected fatal error for missing NDK")
		}
	}()
	NewConfig(testContext(), "-n", filepath.Join(t.TempDir(), "no-such-ndk"))
}

func TestNewConfigNotAnNdk(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	defer func() {
		if recover() == nil {
			t.Error("expected fatal error for directory without a build system")
		}
	}()
	NewConfig(testContext(), "-n", t.TempDir())
}

func TestNewConfigDiscovery(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)
	t.Setenv("ANDROID_NDK_HOME", root)

	config := NewConfig(testContext())

	if got := config.NDK().Root(); got != root {
		t.Errorf("expected discovered NDK %q got %q", root, got)
	}
	if got, ok := config.EnvDeps()["ANDROID_NDK_HOME"]; !ok || got != root {
		t.Errorf("expected ANDROID_NDK_HOME %q as environment dependency, got %q", root, got)
	}
}

func TestNewConfigOutDir(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)
	outDir := filepath.Join(t.TempDir(), "out")

	if err := writeFile(filepath.Join(outDir, ".temp", "junk"), "stale"); err != nil {
		t.Fatal(err)
	}

	config := NewConfig(testContext(), "-n", root, "-o", outDir)

	if got := config.OutDir(); got != outDir {
		t.Errorf("expected out dir %q got %q", outDir, got)
	}
	want := filepath.Join(outDir, ".temp")
	if got := config.TempDir(); got != want {
		t.Errorf("expected temp dir %q got %q", want, got)
	}
	info, err := os.Stat(config.TempDir())
	if err != nil || !info.IsDir() {
		t.Error("expected temp dir to exist")
	}
	if _, err := os.Stat(filepath.Join(config.TempDir(), "junk")); !os.IsNotExist(err) {
		t.Error("expected temp dir to be emptied")
	}
	if got, _ := config.Environment().Get("TMPDIR"); got != config.TempDir() {
		t.Errorf("expected TMPDIR %q got %q", config.TempDir(), got)
	}
}

func TestNewConfigOutDirWithSpace(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)
	defer func() {
		if recover() == nil {
			t.Error("expected fatal error for out dir containing a space")
		}
	}()
	NewConfig(testContext(), "-n", root, "-o", filepath.Join(t.TempDir(), "has space"))
}

func TestNewConfigSugar(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)

	config := NewConfig(testContext(), "-n", root,
		"--abi", "armeabi-v7a", "--platform", "N", "--stl", "gnustl_static", "--optim", "debug")

	app := config.ApplicationVars()
	if got := app["APP_ABI"]; got != "armeabi-v7a" {
		t.Errorf("expected APP_ABI armeabi-v7a got %q", got)
	}
	if got := app["APP_PLATFORM"]; got != "android-24" {
		t.Errorf("expected APP_PLATFORM android-24 got %q", got)
	}
	if got := app["APP_STL"]; got != "gnustl_static" {
		t.Errorf("expected APP_STL gnustl_static got %q", got)
	}
	if got := app["APP_OPTIM"]; got != "debug" {
		t.Errorf("expected APP_OPTIM debug got %q", got)
	}
}

func TestNewConfigAbiAll(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)

	config := NewConfig(testContext(), "-n", root, "--abi", "all")

	if got := config.ApplicationVars()["APP_ABI"]; got != "all" {
		t.Errorf("expected APP_ABI all got %q", got)
	}
}

func TestNewConfigBadAbi(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)
	defer func() {
		if recover() == nil {
			t.Error("expected fatal error for unknown abi")
		}
	}()
	NewConfig(testContext(), "-n", root, "--abi", "sparc")
}

func TestNewConfigBadPlatform(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)
	defer func() {
		if recover() == nil {
			t.Error("expected fatal error for unparseable platform")
		}
	}()
	NewConfig(testContext(), "-n", root, "--platform", "android-one")
}

func TestNewConfigBuildToolFlagWins(t *testing.T) {
	root := fakeNdk(t)
	settings := writeSettings(t, "build_tool: gmake\n")

	config := NewConfig(testContext(), "-s", settings, "-n", root, "--make", "remake")

	if got := config.BuildTool(); got != "remake" {
		t.Errorf("expected build tool remake got %q", got)
	}
}

func TestNewConfigOutputFlags(t *testing.T) {
	t.Setenv("INTERROGATE_SETTINGS", "")
	root := fakeNdk(t)

	config := NewConfig(testContext(), "-n", root,
		"--dumpvar", "TARGET_CC", "-I", "-f", "shell", "-v")

	if got := config.DumpVar(); got != "TARGET_CC" {
		t.Errorf("expected dumpvar TARGET_CC got %q", got)
	}
	if !config.IncludeFlags() {
		t.Error("expected include flags to be set")
	}
	if got := config.Format(); got != "shell" {
		t.Errorf("expected format shell got %q", got)
	}
	if !config.IsVerbose() {
		t.Error("expected verbose to be set")
	}
}
