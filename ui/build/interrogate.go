package build

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clchiou/interrogator/ndk"
)

// The synthetic module the throwaway project declares. The NDK wants
// a source file name, but the file itself never has to exist because
// the interrogate target does not compile anything.
const interrogateModule = "InterrogateActivity"

// Variables the driver Makefile reports directly, in report order.
// TARGET_CCFLAGS and C_INCLUDES need introspection calls and are
// rendered separately.
var interrogateVars = []string{
	"TARGET_CC",
	"TARGET_CFLAGS",
	"TARGET_CPP",
	"TARGET_CPPFLAGS",
	"TARGET_CXX",
	"TARGET_CXXFLAGS",
	"TARGET_LD",
	"TARGET_LDFLAGS",
	"TARGET_AR",
	"TARGET_ARFLAGS",
	"TARGET_STRIP",
	"TARGET_OBJCOPY",
	"LOCAL_CFLAGS",
	"LOCAL_CPPFLAGS",
	"LOCAL_CXXFLAGS",
	"NDK_APP_CFLAGS",
	"NDK_APP_CPPFLAGS",
	"NDK_APP_CXXFLAGS",
}

// Interrogator owns a scratch room holding a throwaway NDK project:
// the driver Makefile written at construction, plus jni/Android.mk
// and jni/Application.mk written by the setters. One interrogation at
// a time per room; an Interrogator must not be shared across
// goroutines.
type Interrogator struct {
	ctx    Context
	config Config

	room string

	buildType       ndk.BuildType
	androidVars     map[string]string
	applicationVars map[string]string
}

// NewInterrogator creates the scratch room and writes the driver
// Makefile into it. The caller must Close the Interrogator to remove
// the room again.
func NewInterrogator(ctx Context, config Config) (*Interrogator, error) {
	n := config.NDK()
	if _, err := os.Stat(n.Root()); err != nil {
		return nil, fmt.Errorf("could not find NDK at %s", n.Root())
	}

	if parent := config.TempDir(); parent != "" {
		if err := os.MkdirAll(parent, 0777); err != nil {
			return nil, err
		}
	}
	room, err := os.MkdirTemp(config.TempDir(), "interrogate")
	if err != nil {
		return nil, err
	}

	i := &Interrogator{
		ctx:    ctx,
		config: config,
		room:   room,
	}
	if err := writeFile(filepath.Join(room, "Makefile"), i.makefile()); err != nil {
		os.RemoveAll(room)
		return nil, err
	}
	return i, nil
}

// Room returns the scratch directory. It exists until Close.
func (i *Interrogator) Room() string {
	return i.room
}

// Close removes the scratch room and everything in it. Safe to call
// more than once.
func (i *Interrogator) Close() error {
	if i.room == "" {
		return nil
	}
	err := os.RemoveAll(i.room)
	i.room = ""
	return err
}

func (i *Interrogator) makefile() string {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "# Makefile\n")
	fmt.Fprintf(buf, "include %s\n", i.config.NDK().BuildLocalMk())
	fmt.Fprintf(buf, "\n")
	fmt.Fprintf(buf, "interrogate:\n")
	fmt.Fprintf(buf, "\t@echo TARGET_CCFLAGS=$(call get-src-file-target-cflags,%s.cpp)\n", interrogateModule)
	for _, name := range interrogateVars {
		fmt.Fprintf(buf, "\t@echo %s=$(%s)\n", name, name)
	}
	fmt.Fprintf(buf, "\t@echo C_INCLUDES=$(TARGET_C_INCLUDES) \\\n")
	fmt.Fprintf(buf, "\t\t$(call module-get-listed-export,\\\n")
	fmt.Fprintf(buf, "\t\t$(call module-get-all-dependencies,%s),C_INCLUDES)\n", interrogateModule)
	fmt.Fprintf(buf, "\n")
	fmt.Fprintf(buf, ".PHONY: interrogate\n")
	return buf.String()
}

// SetAndroidVars writes jni/Android.mk for the build type. A nil vars
// map keeps the previously set variables; when neither the build type
// nor the variables change, the file is left untouched so make can
// reuse its state from the previous question.
func (i *Interrogator) SetAndroidVars(buildType ndk.BuildType, vars map[string]string) error {
	if !buildType.Valid() {
		panic(fmt.Errorf("unknown build type %d", int(buildType)))
	}
	if i.room == "" {
		return fmt.Errorf("the interrogation room was already closed")
	}
	if i.buildType == buildType && i.androidVars != nil && vars == nil {
		return nil
	}
	i.buildType = buildType
	i.androidVars = vars

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "# Android.mk\n")
	fmt.Fprintf(buf, "LOCAL_PATH := $(call my-dir)\n")
	fmt.Fprintf(buf, "include $(CLEAR_VARS)\n")
	fmt.Fprintf(buf, "LOCAL_MODULE := %s\n", interrogateModule)
	fmt.Fprintf(buf, "LOCAL_SRC_FILES := %s.cpp\n", interrogateModule)
	for _, name := range ndk.SortedStringKeys(vars) {
		fmt.Fprintf(buf, "%s := %s\n", name, vars[name])
	}
	fmt.Fprintf(buf, "include $(%s)\n", buildType.IncludeName())

	return writeFile(filepath.Join(i.room, "jni/Android.mk"), buf.String())
}

// SetApplicationVars writes jni/Application.mk. A nil vars map keeps
// whatever was previously written; it never clears the file.
func (i *Interrogator) SetApplicationVars(vars map[string]string) error {
	if i.room == "" {
		return fmt.Errorf("the interrogation room was already closed")
	}
	if i.applicationVars != nil && vars == nil {
		return nil
	}
	i.applicationVars = vars

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "# Application.mk\n")
	for _, name := range ndk.SortedStringKeys(vars) {
		fmt.Fprintf(buf, "%s := %s\n", name, vars[name])
	}

	return writeFile(filepath.Join(i.room, "jni/Application.mk"), buf.String())
}

// Question applies the build type and variables, runs the build
// tool's interrogate target in the room, and parses its report.
func (i *Interrogator) Question(buildType ndk.BuildType, androidVars, applicationVars map[string]string) (ndk.Variables, error) {
	if err := i.SetAndroidVars(buildType, androidVars); err != nil {
		return nil, err
	}
	if err := i.SetApplicationVars(applicationVars); err != nil {
		return nil, err
	}

	i.ctx.BeginTrace("interrogate")
	defer i.ctx.EndTrace()

	cmd := Command(i.ctx, i.config, "interrogate", i.config.BuildTool(), "interrogate")
	cmd.Sandbox = interrogateSandbox
	cmd.Dir = i.room
	output := bytes.Buffer{}
	cmd.Stdout = &output
	cmd.Stderr = i.ctx.Stderr()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to run %q: %w", i.config.BuildTool(), err)
	}

	return parseInterrogation(output.String())
}

func parseInterrogation(output string) (ndk.Variables, error) {
	var vars ndk.Variables
	for _, line := range strings.Split(output, "\n") {
		if len(line) == 0 {
			continue
		}
		key, value, ok := decodeKeyValue(line)
		if !ok {
			return nil, fmt.Errorf("Failed to parse make line: %q", line)
		}
		vars = append(vars, ndk.Variable{Name: key, Value: strings.TrimSpace(value)})
	}
	return vars, nil
}
