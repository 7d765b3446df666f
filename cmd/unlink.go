package cmd

import (
	"github.com/jamesbehr/lnwrap/filesystem"
	"github.com/spf13/cobra"
)

var unlinkCmd = &cobra.Command{
	Use:   "unlink PATH",
	Short: "Remove a single file with unlink",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := linker.Unlink(filesystem.Path(args[0]))
		if err != nil {
			return err
		}

		finish(code)
		return nil
	},
}
