package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/landevlist/internal/runner"
)

func main() {
	if runner.IsHelpRequest(os.Args[1:]) {
		runner.ShowHelp(os.Stdout)
		os.Exit(0)
	}

	options := runner.ParseOptions()
	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", runner.Version)
		os.Exit(0)
	}

	landevRunner, err := runner.NewRunner(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	// a scan is never cancelled half way, interrupting exits the process
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\r- Ctrl+C pressed in Terminal, Exiting...")
		os.Exit(1)
	}()

	err = landevRunner.Run(context.Background())
	if err != nil {
		if !errors.Is(err, runner.ErrMissingDependency) {
			gologger.Error().Msgf("Could not run landevlist: %s\n", err)
		} else {
			gologger.Verbose().Msgf("%s\n", err)
		}
	}
	os.Exit(runner.ExitCode(err))
}
