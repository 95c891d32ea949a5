package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the hyperview CLI with an info-level logger on stderr.
// --verbose (-v) switches the logger to debug level.
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	var verbose bool

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	pre := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		return pre(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
