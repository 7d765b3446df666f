package link

import (
	"errors"
	"fmt"
)

var ErrInvalidBackupControl = errors.New("link: invalid backup control")

// BackupControl selects how ln backs up an existing destination. The zero
// value means no policy was chosen.
type BackupControl string

const (
	BackupNone     BackupControl = "none"
	BackupOff      BackupControl = "off"
	BackupNumbered BackupControl = "numbered"
	BackupT        BackupControl = "t"
	BackupExisting BackupControl = "existing"
	BackupNil      BackupControl = "nil"
	BackupSimple   BackupControl = "simple"
	BackupNever    BackupControl = "never"
)

var backupControls = []BackupControl{
	BackupNone,
	BackupOff,
	BackupNumbered,
	BackupT,
	BackupExisting,
	BackupNil,
	BackupSimple,
	BackupNever,
}

// BackupControls lists every policy in canonical order.
func BackupControls() []BackupControl {
	return append([]BackupControl(nil), backupControls...)
}

func ParseBackupControl(s string) (BackupControl, error) {
	for _, c := range backupControls {
		if string(c) == s {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidBackupControl, s)
}

func (c BackupControl) String() string {
	return string(c)
}

func (c *BackupControl) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = ""
		return nil
	}

	parsed, err := ParseBackupControl(string(text))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

func (c BackupControl) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// Options mirrors the switches of ln. Every field is independent; the only
// precedence rule is that Backup, when set, wins over MakeBackup. Empty
// Suffix and TargetDirectory are treated as absent.
//
// Contradictory combinations (Logical with Physical, Symbolic with Directory)
// are passed through and left for ln to reject.
type Options struct {
	Backup            BackupControl `toml:"backup,omitempty"`
	MakeBackup        bool          `toml:"make_backup,omitempty"`
	Directory         bool          `toml:"directory,omitempty"`
	Force             bool          `toml:"force,omitempty"`
	Logical           bool          `toml:"logical,omitempty"`
	NoDereference     bool          `toml:"no_dereference,omitempty"`
	Physical          bool          `toml:"physical,omitempty"`
	Relative          bool          `toml:"relative,omitempty"`
	Symbolic          bool          `toml:"symbolic,omitempty"`
	Suffix            string        `toml:"suffix,omitempty"`
	TargetDirectory   string        `toml:"target_directory,omitempty"`
	NoTargetDirectory bool          `toml:"no_target_directory,omitempty"`
}

// Args returns the ln flags for o. The order is fixed because ln lets later
// flags override earlier ones.
func (o *Options) Args() []string {
	args := []string{}
	if o == nil {
		return args
	}

	if o.Backup != "" {
		args = append(args, "--backup="+o.Backup.String())
	} else if o.MakeBackup {
		args = append(args, "-b")
	}

	switches := []struct {
		set  bool
		flag string
	}{
		{o.Directory, "-d"},
		{o.Force, "-f"},
		{o.Logical, "-L"},
		{o.NoDereference, "-n"},
		{o.Physical, "-P"},
		{o.Relative, "-r"},
		{o.Symbolic, "-s"},
	}

	for _, s := range switches {
		if s.set {
			args = append(args, s.flag)
		}
	}

	if o.Suffix != "" {
		args = append(args, "-S", o.Suffix)
	}

	if o.TargetDirectory != "" {
		args = append(args, "-t", o.TargetDirectory)
	}

	if o.NoTargetDirectory {
		args = append(args, "-T")
	}

	return args
}
