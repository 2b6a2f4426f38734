package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/clchiou/interrogator/env"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ndk_env env_file\n")
	fmt.Fprintf(os.Stderr, "exits with success if the environment variables in env_file match\n")
	fmt.Fprintf(os.Stderr, "the current environment\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}

	stale, err := env.StaleEnvFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}

	if stale {
		os.Exit(1)
	}

	os.Exit(0)
}
