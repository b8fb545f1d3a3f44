// Command slidedeck generates an HTML or PDF slide deck from a Markdown file.
package main

import (
	"context"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	root := newRootCmd(env)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		printError(env.Stderr, err, configName(cmd, env))
	}
	return exitCodeFor(err)
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(printf func(string, ...any)) {
	_, _ = maxprocs.Set(maxprocs.Logger(printf))
}
