// Interrogator extracts toolchain settings from the
// Android NDK by asking the NDK's own make based build
// system to report them. It renders a throwaway NDK
// project into a scratch directory, runs the build
// tool against a driver makefile there, and parses the
// NAME=value report the build system prints back.
//
// Interrogation concepts:
//
// NDK
// An installation of the Android Native Development
// Kit. It carries the make fragments under build/core
// that define the toolchain configuration, which is
// the authoritative source this tool reports from.
//
// Interrogation room
// A freshly created scratch directory holding the
// throwaway project: a driver Makefile at the top and
// jni/Android.mk plus jni/Application.mk below it. The
// room exists only for the duration of a run and is
// removed on every exit path.
//
// Question
// One invocation of the build tool inside the room.
// The driver makefile includes the NDK's build system,
// then echoes the resolved variables, one NAME=value
// per line, without compiling anything.
//
// Build type
// Whether the throwaway module poses as a static
// library, a shared library, or an executable. The
// build system resolves different toolchain flags for
// each, so the type is part of every question.
//
// Android.mk variables
// Module-scoped variables (LOCAL_*) rendered into
// jni/Android.mk before the question is asked.
//
// Application.mk variables
// Application-scoped variables (APP_*) rendered into
// jni/Application.mk, selecting things like the target
// ABI, platform level, and STL.
package interrogator
