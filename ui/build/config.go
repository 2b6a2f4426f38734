package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/blueprint/pathtools"
	"github.com/google/blueprint/proptools"
	"github.com/jessevdk/go-flags"

	"github.com/clchiou/interrogator/ndk"
	"github.com/clchiou/interrogator/shared"
)

type Config struct{ *configImpl }

type configImpl struct {
	arguments []string
	environ   *Environment

	// Every environment variable read while building the config, with
	// the value seen. Used to detect staleness across runs.
	envDeps map[string]string

	ndk       *ndk.NDK
	buildTool string
	buildType ndk.BuildType

	androidVars     map[string]string
	applicationVars map[string]string

	outDir       string
	format       string
	dumpVar      string
	includeFlags bool
	verbose      bool
}

type options struct {
	Ndk       string `short:"n" long:"ndk" description:"path to the NDK to interrogate" value-name:"PATH"`
	BuildType string `short:"t" long:"type" description:"module build type" choice:"static" choice:"shared" choice:"executable" default:"static"`

	AndroidVars map[string]string `short:"A" long:"android-var" description:"variable for jni/Android.mk" value-name:"NAME:VALUE"`
	AppVars     map[string]string `short:"V" long:"app-var" description:"variable for jni/Application.mk" value-name:"NAME:VALUE"`

	Abi      string `long:"abi" description:"shorthand for APP_ABI" value-name:"ABI"`
	Platform string `long:"platform" description:"shorthand for APP_PLATFORM; accepts android-N, N or a codename" value-name:"PLATFORM"`
	Stl      string `long:"stl" description:"shorthand for APP_STL" value-name:"STL"`
	Optim    string `long:"optim" description:"shorthand for APP_OPTIM" choice:"debug" choice:"release"`

	BuildTool    string `long:"make" description:"build tool to run (default make)" value-name:"TOOL"`
	Format       string `short:"f" long:"format" description:"how to print the report (default text)" choice:"text" choice:"shell" choice:"export"`
	DumpVar      string `long:"dumpvar" description:"print just this variable's value" value-name:"NAME"`
	IncludeFlags bool   `short:"I" long:"include-flags" description:"print the dumped variable as -I flags"`

	OutDir   string `short:"o" long:"out-dir" description:"write the log, trace and environment files here" value-name:"DIR"`
	Settings string `short:"s" long:"settings" description:"settings file (default $INTERROGATE_SETTINGS)" value-name:"FILE"`
	Verbose  bool   `short:"v" long:"verbose" description:"show verbose output"`
}

func NewConfig(ctx Context, args ...string) Config {
	ret := &configImpl{
		environ: OsEnvironment(),
		envDeps: make(map[string]string),
	}

	opts := ret.parseArgs(ctx, args)

	settingsPath := opts.Settings
	settingsFromEnv := false
	if settingsPath == "" {
		settingsPath = ret.getenv("INTERROGATE_SETTINGS")
		settingsFromEnv = true
	}
	var settings *Settings
	if settingsPath != "" {
		var err error
		settings, err = LoadSettings(settingsPath)
		if err != nil {
			// A stale INTERROGATE_SETTINGS pointing at a removed file is
			// skipped; a mistyped --settings path is not.
			if !settingsFromEnv || !errors.Is(err, os.ErrNotExist) {
				ctx.Fatalln("Failed to load settings:", err)
			}
			settings = nil
		}
	}

	// A make that inherits these would second-guess the driver
	// Makefile or redirect the NDK's project discovery.
	ret.environ.Unset(
		"MAKEFLAGS",
		"MAKELEVEL",
		"MFLAGS",
		"NDK_ROOT",
		"NDK_PROJECT_PATH",
		"NDK_MODULE_PATH",
		"APP_BUILD_SCRIPT",
		"GREP_OPTIONS",
		"CDPATH",
	)

	ret.configureLocale(ctx)

	ndkPath := opts.Ndk
	if ndkPath == "" && settings != nil && settings.Ndk != "" {
		expanded, err := ndk.Expand(settings.Ndk, func(name string) (string, error) {
			return ret.getenv(name), nil
		})
		if err != nil {
			ctx.Fatalln("Failed to expand ndk path in settings:", err)
		}
		ndkPath = expanded
	}
	if ndkPath == "" {
		path, err := ndk.FindNDK(ret.getenv, pathtools.OsFs)
		if err != nil {
			ctx.Fatalln(err)
		}
		ndkPath = path
	}
	n, err := ndk.New(ndkPath)
	if err != nil {
		ctx.Fatalln(err)
	}
	if !n.HasBuildSystem() {
		ctx.Fatalf("%s does not look like an NDK: missing %s", n.Root(), n.BuildLocalMk())
	}
	ret.ndk = n

	buildType, err := ndk.ParseBuildType(opts.BuildType)
	if err != nil {
		ctx.Fatalln(err)
	}
	ret.buildType = buildType

	ret.androidVars = make(map[string]string)
	ret.applicationVars = make(map[string]string)
	if settings != nil {
		for k, v := range settings.AndroidVars {
			ret.androidVars[k] = v
		}
		for k, v := range settings.ApplicationVars {
			ret.applicationVars[k] = v
		}
	}
	ret.applySugar(ctx, opts)
	for k, v := range opts.AndroidVars {
		ret.androidVars[k] = v
	}
	for k, v := range opts.AppVars {
		ret.applicationVars[k] = v
	}
	for _, arg := range ret.arguments {
		k, v, ok := decodeKeyValue(arg)
		if !ok || len(k) == 0 {
			ctx.Fatalf("Unknown argument %q", arg)
		}
		if strings.HasPrefix(k, "LOCAL_") {
			ret.androidVars[k] = v
		} else {
			ret.applicationVars[k] = v
		}
	}

	ret.buildTool = opts.BuildTool
	if ret.buildTool == "" {
		var fromSettings *string
		if settings != nil {
			fromSettings = settings.BuildTool
		}
		ret.buildTool = proptools.StringDefault(fromSettings, "make")
	}

	ret.format = opts.Format
	if ret.format == "" {
		var fromSettings *string
		if settings != nil {
			fromSettings = settings.Format
		}
		ret.format = proptools.StringDefault(fromSettings, "text")
	}

	ret.dumpVar = opts.DumpVar
	ret.includeFlags = opts.IncludeFlags
	ret.verbose = opts.Verbose

	ret.outDir = opts.OutDir
	if ret.outDir == "" && settings != nil {
		ret.outDir = settings.OutDir
	}
	if ret.outDir != "" {
		ret.outDir = filepath.Clean(ret.outDir)
		if strings.ContainsRune(absPath(ctx, ret.outDir), ' ') {
			ctx.Println("The absolute path of your output directory contains a space character:")
			ctx.Println()
			ctx.Printf("%q\n", absPath(ctx, ret.outDir))
			ctx.Println()
			ctx.Fatalln("Directory names containing spaces are not supported")
		}
		ensureDirectoriesExist(ctx, ret.outDir)
		ensureEmptyDirectoriesExist(ctx, ret.TempDir())
		ret.environ.Set("TMPDIR", absPath(ctx, ret.TempDir()))
	}

	return Config{ret}
}

func (c *configImpl) parseArgs(ctx Context, args []string) options {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] [NAME=VALUE...]"

	positional, err := parser.ParseArgs(args)
	if err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(ctx.Stdout(), err)
			os.Exit(0)
		}
		ctx.Fatalln("Failed to parse arguments:", err)
	}
	c.arguments = positional

	return opts
}

// applySugar translates the --abi, --platform, --stl and --optim
// shorthands into the APP_* variables they stand for.
func (c *configImpl) applySugar(ctx Context, opts options) {
	if opts.Abi != "" {
		if opts.Abi != "all" {
			if _, err := ndk.AbiByName(opts.Abi); err != nil {
				ctx.Fatalln(err)
			}
		}
		c.applicationVars["APP_ABI"] = opts.Abi
	}
	if opts.Platform != "" {
		level, err := ndk.ParsePlatform(opts.Platform)
		if err != nil {
			ctx.Fatalln(err)
		}
		name := ndk.PlatformName(level)
		if platforms := c.ndk.Platforms(); len(platforms) > 0 && !ndk.InList(name, platforms) {
			ctx.Verbosef("%s is not among the NDK's platforms %v\n", name, platforms)
		}
		c.applicationVars["APP_PLATFORM"] = name
	}
	if opts.Stl != "" {
		c.applicationVars["APP_STL"] = opts.Stl
	}
	if opts.Optim != "" {
		c.applicationVars["APP_OPTIM"] = opts.Optim
	}
}

func (c *configImpl) configureLocale(ctx Context) {
	c.environ.UnsetWithPrefix("LC_")
	c.environ.Set("LC_MESSAGES", "en_US.UTF-8")
	c.environ.Set("LANG", "en_US.UTF-8")
}

// getenv reads a variable from the config's private environment and
// records the answer as an environment dependency.
func (c *configImpl) getenv(key string) string {
	value, _ := c.environ.Get(key)
	c.envDeps[key] = value
	return value
}

func (c *configImpl) Environment() *Environment {
	return c.environ
}

func (c *configImpl) Arguments() []string {
	return c.arguments
}

func (c *configImpl) EnvDeps() map[string]string {
	return c.envDeps
}

func (c *configImpl) NDK() *ndk.NDK {
	return c.ndk
}

func (c *configImpl) BuildTool() string {
	return c.buildTool
}

func (c *configImpl) BuildType() ndk.BuildType {
	return c.buildType
}

func (c *configImpl) AndroidVars() map[string]string {
	return c.androidVars
}

func (c *configImpl) ApplicationVars() map[string]string {
	return c.applicationVars
}

func (c *configImpl) OutDir() string {
	return c.outDir
}

// TempDir is the scratch area under OutDir. Empty when no out
// directory was configured; interrogation rooms then go to the
// system's default temporary directory.
func (c *configImpl) TempDir() string {
	if c.outDir == "" {
		return ""
	}
	return shared.TempDirForOutDir(c.outDir)
}

func (c *configImpl) Format() string {
	return c.format
}

func (c *configImpl) DumpVar() string {
	return c.dumpVar
}

func (c *configImpl) IncludeFlags() bool {
	return c.includeFlags
}

func (c *configImpl) IsVerbose() bool {
	return c.verbose
}
