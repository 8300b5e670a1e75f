// Command elevconf inspects, edits, and migrates elevator settings files.
//
// Every command reads a settings file through the same loader the plugin
// uses: malformed values fall back to their defaults with a warning, files
// from older releases are upgraded, and comments are kept.
//
// # Usage
//
//	elevconf check [--watch] <file>
//	elevconf fmt [-w] [-l] <file>...
//	elevconf get [--comments] <file> [path]
//	elevconf set <file> <path> <value>
//	elevconf comment [--clear] <file> <path> [text]...
//	elevconf migrate [--no-backup] <file>...
//	elevconf schema [-o file]
//	elevconf browse <file>
//	elevconf version [--json]
//
// Paths use the decoded form shown by browse and in warnings, such as
// "elevators.DEFAULT.settings.sound.volume" or
// "elevators.DEFAULT.recipes.DEFAULT.recipe[0]". A file argument of "-"
// reads standard input.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
