package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/blueprint/proptools"

	"github.com/clchiou/interrogator/env"
	"github.com/clchiou/interrogator/ndk"
	"github.com/clchiou/interrogator/shared"
	"github.com/clchiou/interrogator/ui/build"
	"github.com/clchiou/interrogator/ui/logger"
	"github.com/clchiou/interrogator/ui/tracer"
)

func main() {
	log := logger.New(os.Stderr)
	defer log.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trace := tracer.New(log)
	defer trace.Close()

	build.SetupSignals(log, cancel, func() {
		trace.Close()
		log.Cleanup()
	})

	buildCtx := build.Context{&build.ContextImpl{
		Context:        ctx,
		Logger:         log,
		Tracer:         trace,
		StdioInterface: build.StdioImpl{},
		Thread:         trace.NewThread("main"),
	}}
	config := build.NewConfig(buildCtx, os.Args[1:]...)

	log.SetVerbose(config.IsVerbose())
	if config.OutDir() != "" {
		log.SetOutput(shared.LogFileForOutDir(config.OutDir()))
		trace.SetOutput(shared.TraceFileForOutDir(config.OutDir()))
	}

	buildCtx.Verbosef("Interrogating NDK %s at %s", config.NDK().Version(), config.NDK().Root())

	interrogator, err := build.NewInterrogator(buildCtx, config)
	if err != nil {
		log.Fatal(err)
	}
	defer interrogator.Close()

	vars, err := interrogator.Question(config.BuildType(), config.AndroidVars(), config.ApplicationVars())
	if err != nil {
		log.Fatal(err)
	}

	if config.OutDir() != "" {
		envFile := shared.EnvFileForOutDir(config.OutDir())
		if err := env.WriteEnvFile(envFile, config.EnvDeps()); err != nil {
			log.Println("Failed to write environment file:", err)
		}
	}

	if name := config.DumpVar(); name != "" {
		value, ok := vars.Get(name)
		if !ok {
			log.Fatalf("The build system did not report %s", name)
		}
		if config.IncludeFlags() {
			value, _ = vars.IncludeFlags(name)
		}
		fmt.Fprintln(buildCtx.Stdout(), value)
		return
	}

	printVars(buildCtx, config, vars)
}

func printVars(ctx build.Context, config build.Config, vars ndk.Variables) {
	for _, v := range vars {
		switch config.Format() {
		case "shell":
			fmt.Fprintf(ctx.Stdout(), "%s=%s\n", v.Name, proptools.ShellEscapeIncludingSpaces(v.Value))
		case "export":
			fmt.Fprintf(ctx.Stdout(), "export %s=%s\n", v.Name, proptools.ShellEscapeIncludingSpaces(v.Value))
		default:
			fmt.Fprintf(ctx.Stdout(), "%s=%s\n", v.Name, v.Value)
		}
	}
}
