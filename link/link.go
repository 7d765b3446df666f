// Package link creates and removes links by running the system ln and unlink
// programs. It translates a typed request into an argument vector, runs it as
// a child process and reports the exit code.
package link

import (
	"errors"

	"github.com/jamesbehr/lnwrap/filesystem"
	"github.com/jamesbehr/lnwrap/logging"
)

const (
	DefaultLinkProgram   = "ln"
	DefaultUnlinkProgram = "unlink"
)

var ErrNoTargets = errors.New("link: no targets")

// Request describes one ln call. Destination and Dir are optional.
type Request struct {
	Targets     []filesystem.Path
	Destination filesystem.Path
	Options     *Options

	// Dir becomes the working directory of ln. Relative targets and
	// destinations are resolved by ln against it; the arguments themselves
	// are not rewritten.
	Dir filesystem.Path
}

// Invocation builds the command line for program: option flags, then the
// targets in order, then the destination.
func (r Request) Invocation(program string) (Invocation, error) {
	if len(r.Targets) == 0 {
		return Invocation{}, ErrNoTargets
	}

	args := r.Options.Args()
	args = append(args, filesystem.Strings(r.Targets)...)

	if r.Destination != "" {
		args = append(args, r.Destination.String())
	}

	return Invocation{
		Program: program,
		Args:    args,
		Dir:     r.Dir.String(),
	}, nil
}

// Linker runs ln and unlink. The zero value uses the programs found in PATH
// and an ExecRunner. A Linker holds no per-call state and may be shared.
type Linker struct {
	LinkProgram   string
	UnlinkProgram string
	Runner        Runner
}

func (l *Linker) linkProgram() string {
	if l.LinkProgram == "" {
		return DefaultLinkProgram
	}

	return l.LinkProgram
}

func (l *Linker) unlinkProgram() string {
	if l.UnlinkProgram == "" {
		return DefaultUnlinkProgram
	}

	return l.UnlinkProgram
}

func (l *Linker) runner() Runner {
	if l.Runner == nil {
		return ExecRunner{}
	}

	return l.Runner
}

func (l *Linker) run(inv Invocation) (int, error) {
	logger := logging.GetLogger("link")
	logging.LogCommand(logger, inv.Program, inv.Args, inv.Dir)

	code, err := l.runner().Run(inv)
	if err != nil {
		logger.Warn().Err(err).Str("command", inv.Program).Msg("Command could not be run")
		return code, err
	}

	logger.Debug().Str("command", inv.Program).Int("exitCode", code).Msg("Command finished")
	return code, nil
}

// Link runs ln for req and returns its exit code. A nonzero code is not an
// error; the error is set only when ln could not be started.
func (l *Linker) Link(req Request) (int, error) {
	inv, err := req.Invocation(l.linkProgram())
	if err != nil {
		return 0, err
	}

	return l.run(inv)
}

// ForceSymlinkOptions are the options used by ForceSymlink.
func ForceSymlinkOptions() *Options {
	return &Options{Force: true, Symbolic: true}
}

// ForceSymlink replaces whatever is at dst with a symbolic link to src.
func (l *Linker) ForceSymlink(src, dst filesystem.Path) (int, error) {
	return l.Link(Request{
		Targets:     []filesystem.Path{src},
		Destination: dst,
		Options:     ForceSymlinkOptions(),
	})
}

// Unlink runs unlink on a single path.
func (l *Linker) Unlink(path filesystem.Path) (int, error) {
	return l.run(Invocation{
		Program: l.unlinkProgram(),
		Args:    []string{path.String()},
	})
}

var defaultLinker = &Linker{}

func Link(req Request) (int, error) {
	return defaultLinker.Link(req)
}

func ForceSymlink(src, dst filesystem.Path) (int, error) {
	return defaultLinker.ForceSymlink(src, dst)
}

func Unlink(path filesystem.Path) (int, error) {
	return defaultLinker.Unlink(path)
}
