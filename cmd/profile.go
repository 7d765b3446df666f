package cmd

import (
	"github.com/jamesbehr/lnwrap/link"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var profileOptions link.Options
var profileBackup string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the default ln options",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the default ln options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := link.LoadProfile(profile())
		if err != nil {
			return err
		}

		return toml.NewEncoder(cmd.OutOrStdout()).Encode(link.Profile{Options: *opts})
	},
}

var profileSaveCmd = &cobra.Command{
	Use:   "save [flags]",
	Short: "Replace the default ln options with the given flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := flagOptions(profileOptions, profileBackup)
		if err != nil {
			return err
		}

		return link.WriteProfile(profile(), opts)
	},
}

func init() {
	addOptionFlags(profileSaveCmd.Flags(), &profileOptions, &profileBackup)

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSaveCmd)
}
