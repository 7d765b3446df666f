package cmd

import (
	"fmt"
	"os"

	"github.com/jamesbehr/lnwrap/filesystem"
	"github.com/jamesbehr/lnwrap/link"
	"github.com/jamesbehr/lnwrap/logging"
	"github.com/spf13/cobra"
)

var verbosity int
var profilePath string

// linker runs every command; tests swap its Runner.
var linker = &link.Linker{}

// exitCode is the status Execute exits with once the command returns.
var exitCode int

var rootCmd = &cobra.Command{
	Use:           "lnwrap",
	Short:         "Create and remove links with ln and unlink",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "TOML file with default ln options (default is $XDG_CONFIG_HOME/lnwrap/defaults.toml)")

	rootCmd.AddCommand(lnCmd)
	rootCmd.AddCommand(forceSymlinkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(profileCmd)
}

func profile() filesystem.Path {
	if profilePath == "" {
		return link.DefaultProfilePath()
	}

	return filesystem.Path(profilePath)
}

// finish records the exit status of a child process. Statuses that cannot be
// passed to os.Exit are reported as a generic failure.
func finish(code int) {
	if code < 0 {
		code = 1
	}

	exitCode = code
}

func Execute() {
	exitCode = 0

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(exitCode)
}
