package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/jamesbehr/lnwrap/filesystem"
	"github.com/jamesbehr/lnwrap/link"
	"github.com/jamesbehr/lnwrap/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errDeclined = errors.New("cmd: overwrite declined")

var lnOptions link.Options
var lnBackup string
var workdir string
var interactive bool

// confirm asks the user whether path may be replaced.
var confirm = func(path filesystem.Path) (bool, error) {
	ok := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Replace existing %s?", path),
	}

	err := survey.AskOne(prompt, &ok)
	return ok, err
}

func addOptionFlags(flags *pflag.FlagSet, opts *link.Options, backup *string) {
	flags.StringVar(backup, "backup", "", "backup policy for existing destinations (none, off, numbered, t, existing, nil, simple, never)")
	flags.BoolVarP(&opts.MakeBackup, "make-backup", "b", false, "make a backup of each existing destination file")
	flags.BoolVarP(&opts.Directory, "directory", "d", false, "allow hard linking directories")
	flags.BoolVarP(&opts.Force, "force", "f", false, "remove existing destination files")
	flags.BoolVarP(&opts.Logical, "logical", "L", false, "dereference targets that are symbolic links")
	flags.BoolVarP(&opts.NoDereference, "no-dereference", "n", false, "treat a destination that is a symlink to a directory as a normal file")
	flags.BoolVarP(&opts.Physical, "physical", "P", false, "make hard links directly to symbolic links")
	flags.BoolVarP(&opts.Relative, "relative", "r", false, "create symbolic links relative to link location")
	flags.BoolVarP(&opts.Symbolic, "symbolic", "s", false, "make symbolic links instead of hard links")
	flags.StringVarP(&opts.Suffix, "suffix", "S", "", "override the usual backup suffix")
	flags.StringVarP(&opts.TargetDirectory, "target-directory", "t", "", "directory in which to create the links")
	flags.BoolVarP(&opts.NoTargetDirectory, "no-target-directory", "T", false, "treat the destination as a normal file always")
}

// flagOptions returns the options given on the command line with the backup
// name validated.
func flagOptions(opts link.Options, backup string) (*link.Options, error) {
	if backup != "" {
		control, err := link.ParseBackupControl(backup)
		if err != nil {
			return nil, err
		}

		opts.Backup = control
	}

	return &opts, nil
}

// layerFlags applies the flags that were explicitly given on the command line
// over defaults. An explicit -b without --backup drops a default backup
// policy so that -b takes effect.
func layerFlags(flags *pflag.FlagSet, defaults *link.Options, given link.Options, backup string) (*link.Options, error) {
	set, err := flagOptions(given, backup)
	if err != nil {
		return nil, err
	}

	opts := *defaults

	switches := []struct {
		name  string
		field *bool
		value bool
	}{
		{"make-backup", &opts.MakeBackup, set.MakeBackup},
		{"directory", &opts.Directory, set.Directory},
		{"force", &opts.Force, set.Force},
		{"logical", &opts.Logical, set.Logical},
		{"no-dereference", &opts.NoDereference, set.NoDereference},
		{"physical", &opts.Physical, set.Physical},
		{"relative", &opts.Relative, set.Relative},
		{"symbolic", &opts.Symbolic, set.Symbolic},
		{"no-target-directory", &opts.NoTargetDirectory, set.NoTargetDirectory},
	}

	for _, s := range switches {
		if flags.Changed(s.name) {
			*s.field = s.value
		}
	}

	if flags.Changed("suffix") {
		opts.Suffix = set.Suffix
	}

	if flags.Changed("target-directory") {
		opts.TargetDirectory = set.TargetDirectory
	}

	if flags.Changed("backup") {
		opts.Backup = set.Backup
	} else if flags.Changed("make-backup") {
		opts.Backup = ""
	}

	return &opts, nil
}

// splitArgs follows ln's synopsis: with a target directory every argument is a
// target, otherwise the last of several arguments is the destination.
func splitArgs(args []string, opts *link.Options) ([]filesystem.Path, filesystem.Path) {
	paths := make([]filesystem.Path, len(args))
	for i, arg := range args {
		paths[i] = filesystem.Path(arg)
	}

	if opts.TargetDirectory != "" || len(paths) == 1 {
		return paths, ""
	}

	return paths[:len(paths)-1], paths[len(paths)-1]
}

func within(dir filesystem.Path, targets []filesystem.Path) []filesystem.Path {
	paths := make([]filesystem.Path, len(targets))
	for i, target := range targets {
		paths[i] = dir.Join(target.Base())
	}

	return paths
}

// destinations lists the entries ln will create or replace for req.
func destinations(req link.Request) []filesystem.Path {
	opts := req.Options
	if opts == nil {
		opts = &link.Options{}
	}

	if opts.TargetDirectory != "" {
		return within(filesystem.Path(opts.TargetDirectory).Resolve(req.Dir), req.Targets)
	}

	if req.Destination == "" {
		return within(req.Dir, req.Targets)
	}

	dest := req.Destination.Resolve(req.Dir)
	if opts.NoTargetDirectory || !dest.IsDir() {
		return []filesystem.Path{dest}
	}

	// -n keeps a symlink to a directory as the destination itself
	if _, err := dest.Readlink(); err == nil && opts.NoDereference {
		return []filesystem.Path{dest}
	}

	return within(dest, req.Targets)
}

func confirmOverwrite(req link.Request) error {
	for _, dest := range destinations(req) {
		exists, err := dest.Exists()
		if err != nil {
			return err
		}

		if !exists {
			continue
		}

		ok, err := confirm(dest)
		if err != nil {
			return err
		}

		if !ok {
			return errDeclined
		}
	}

	return nil
}

func runLink(req link.Request) error {
	if interactive {
		err := confirmOverwrite(req)
		if errors.Is(err, errDeclined) {
			logger := logging.GetLogger("cmd")
			logger.Info().Msg("Nothing linked")
			finish(1)
			return nil
		}

		if err != nil {
			return err
		}
	}

	code, err := linker.Link(req)
	if err != nil {
		return err
	}

	finish(code)
	return nil
}

var lnCmd = &cobra.Command{
	Use:   "ln [flags] TARGET... [DEST]",
	Short: "Make links between files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := link.LoadProfile(profile())
		if err != nil {
			return err
		}

		opts, err := layerFlags(cmd.Flags(), defaults, lnOptions, lnBackup)
		if err != nil {
			return err
		}

		targets, destination := splitArgs(args, opts)

		return runLink(link.Request{
			Targets:     targets,
			Destination: destination,
			Options:     opts,
			Dir:         filesystem.Path(workdir),
		})
	},
}

func init() {
	addOptionFlags(lnCmd.Flags(), &lnOptions, &lnBackup)
	lnCmd.Flags().StringVarP(&workdir, "workdir", "C", "", "run ln in this directory")
	lnCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask before replacing existing files")
}
