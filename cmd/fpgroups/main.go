package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fpgroups/internal/cli"
	fperrors "github.com/matzehuels/fpgroups/pkg/errors"
)

// Exit codes beyond 0 and 1.
const (
	exitLimit     = 3   // a size or choice limit stopped the search
	exitInterrupt = 130 // SIGINT, as shells report it
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:])
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// execute runs the command line in args.
func execute(ctx context.Context, args []string) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SilenceErrors = true

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	root.PersistentPreRun = func(*cobra.Command, []string) {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
	}
	return root.ExecuteContext(ctx)
}

// exitCode reports err on w and picks the process exit code for it.
func exitCode(err error, w io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupt
	}
	fmt.Fprintln(w, "Error:", err)
	if fperrors.IsLimit(err) {
		return exitLimit
	}
	return 1
}
