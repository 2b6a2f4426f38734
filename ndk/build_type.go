package ndk

import "fmt"

// BuildType selects which NDK build-type include file an Android.mk
// pulls in as its final line. Exactly one is active per module.
type BuildType int

const (
	buildTypeUnset BuildType = iota
	StaticLibrary
	SharedLibrary
	Executable
)

func (t BuildType) Valid() bool {
	switch t {
	case StaticLibrary, SharedLibrary, Executable:
		return true
	}
	return false
}

// IncludeName returns the NDK variable naming the build-type include
// file, as it appears in `include $(BUILD_...)`.
func (t BuildType) IncludeName() string {
	switch t {
	case StaticLibrary:
		return "BUILD_STATIC_LIBRARY"
	case SharedLibrary:
		return "BUILD_SHARED_LIBRARY"
	case Executable:
		return "BUILD_EXECUTABLE"
	}
	panic(fmt.Errorf("unknown build type %d", int(t)))
}

func (t BuildType) String() string {
	switch t {
	case StaticLibrary:
		return "static"
	case SharedLibrary:
		return "shared"
	case Executable:
		return "executable"
	}
	return "unset"
}

// ParseBuildType accepts the short command line spellings as well as
// the BUILD_* names the NDK itself uses.
func ParseBuildType(s string) (BuildType, error) {
	switch s {
	case "static", "BUILD_STATIC_LIBRARY":
		return StaticLibrary, nil
	case "shared", "BUILD_SHARED_LIBRARY":
		return SharedLibrary, nil
	case "executable", "BUILD_EXECUTABLE":
		return Executable, nil
	}
	return buildTypeUnset, fmt.Errorf("Invalid build type %q. Must be one of 'static', 'shared' or 'executable'", s)
}
