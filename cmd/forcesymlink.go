package cmd

import (
	"github.com/jamesbehr/lnwrap/filesystem"
	"github.com/jamesbehr/lnwrap/link"
	"github.com/spf13/cobra"
)

var forceSymlinkCmd = &cobra.Command{
	Use:     "force-symlink SRC DEST",
	Aliases: []string{"fs"},
	Short:   "Replace DEST with a symbolic link to SRC",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst := filesystem.Path(args[0]), filesystem.Path(args[1])

		if interactive {
			return runLink(link.Request{
				Targets:     []filesystem.Path{src},
				Destination: dst,
				Options:     link.ForceSymlinkOptions(),
			})
		}

		code, err := linker.ForceSymlink(src, dst)
		if err != nil {
			return err
		}

		finish(code)
		return nil
	},
}

func init() {
	forceSymlinkCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask before replacing DEST")
}
