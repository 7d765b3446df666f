package link

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/jamesbehr/lnwrap/filesystem"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireProgram(t *testing.T, name string) {
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %s", name, err)
	}
}

func TestExecRunnerExitCode(t *testing.T) {
	requireProgram(t, "sh")

	for _, code := range []int{0, 1, 3} {
		got, err := ExecRunner{}.Run(Invocation{
			Program: "sh",
			Args:    []string{"-c", "exit $0", strconv.Itoa(code)},
		})
		require.NoError(t, err)
		assert.Equal(t, code, got)
	}
}

func TestExecRunnerSignal(t *testing.T) {
	requireProgram(t, "sh")

	code, err := ExecRunner{}.Run(Invocation{
		Program: "sh",
		Args:    []string{"-c", "kill -9 $$"},
	})
	require.NoError(t, err)
	assert.Equal(t, SignalExitCode, code)
}

func TestExecRunnerWorkingDirectory(t *testing.T) {
	requireProgram(t, "pwd")

	dir := t.TempDir()
	var stdout bytes.Buffer

	code, err := ExecRunner{Stdout: &stdout}.Run(Invocation{Program: "pwd", Args: []string{"-P"}, Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	expected, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, expected+"\n", stdout.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write refused")
}

func TestExecRunnerStreamFailureKeepsExitCode(t *testing.T) {
	requireProgram(t, "sh")

	var logs bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&logs)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer func() { log.Logger = previous }()

	code, err := ExecRunner{Stdout: failingWriter{}}.Run(Invocation{
		Program: "sh",
		Args:    []string{"-c", "echo hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, logs.String(), "write refused")
}

func TestExecRunnerLaunchFailure(t *testing.T) {
	testCases := []Invocation{
		{Program: "/path/does/not/exist/ln"},
		{Program: "lnwrap-no-such-program"},
		{Program: "true", Dir: "/path/does/not/exist"},
	}

	for _, inv := range testCases {
		t.Run(inv.String(), func(t *testing.T) {
			code, err := ExecRunner{}.Run(inv)
			require.ErrorIs(t, err, ErrLaunch)
			assert.Equal(t, 0, code)

			var launchErr *LaunchError
			require.ErrorAs(t, err, &launchErr)
			assert.Equal(t, inv.Program, launchErr.Program)
			assert.NotNil(t, launchErr.Unwrap())
		})
	}
}

func TestLinkMissingProgram(t *testing.T) {
	linker := &Linker{LinkProgram: "/path/does/not/exist/ln", UnlinkProgram: "/path/does/not/exist/unlink"}

	_, err := linker.ForceSymlink("a", "b")
	require.ErrorIs(t, err, ErrLaunch)

	_, err = linker.Unlink("a")
	require.ErrorIs(t, err, ErrLaunch)
}

func TestForceSymlinkAndUnlink(t *testing.T) {
	requireProgram(t, "ln")
	requireProgram(t, "unlink")

	tmp := filesystem.MakePath(t.TempDir())
	require.NoError(t, tmp.Join("1.txt").WriteFile([]byte("one"), 0644))
	require.NoError(t, tmp.Join("2.txt").WriteFile([]byte("two"), 0644))

	some := tmp.Join("some.txt")

	code, err := ForceSymlink(tmp.Join("1.txt"), some)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assertLink(t, some, tmp.Join("1.txt"))

	code, err = ForceSymlink(tmp.Join("2.txt"), some)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assertLink(t, some, tmp.Join("2.txt"))

	code, err = Unlink(some)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	exists, err := some.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	// The link targets are untouched
	assert.FileExists(t, tmp.Join("1.txt").String())
	assert.FileExists(t, tmp.Join("2.txt").String())
}

func TestLinkInWorkingDirectory(t *testing.T) {
	requireProgram(t, "ln")

	tmp := filesystem.MakePath(t.TempDir())
	require.NoError(t, tmp.Join("data").MkdirAll(0755))
	require.NoError(t, tmp.Join("data/file").WriteFile(nil, 0644))

	code, err := Link(Request{
		Targets:     []filesystem.Path{"file"},
		Destination: "alias",
		Options:     &Options{Symbolic: true},
		Dir:         tmp.Join("data"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assertLink(t, tmp.Join("data/alias"), "file")
}

func TestLinkIntoTargetDirectory(t *testing.T) {
	requireProgram(t, "ln")

	tmp := filesystem.MakePath(t.TempDir())
	require.NoError(t, tmp.Join("bin").MkdirAll(0755))
	require.NoError(t, tmp.Join("a").WriteFile(nil, 0644))
	require.NoError(t, tmp.Join("b").WriteFile(nil, 0644))

	code, err := Link(Request{
		Targets: []filesystem.Path{tmp.Join("a"), tmp.Join("b")},
		Options: &Options{Symbolic: true, TargetDirectory: tmp.Join("bin").String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assertLink(t, tmp.Join("bin/a"), tmp.Join("a"))
	assertLink(t, tmp.Join("bin/b"), tmp.Join("b"))
}

func TestLinkExistingDestinationFails(t *testing.T) {
	requireProgram(t, "ln")

	tmp := filesystem.MakePath(t.TempDir())
	require.NoError(t, tmp.Join("a").WriteFile(nil, 0644))
	require.NoError(t, tmp.Join("b").WriteFile(nil, 0644))

	code, err := Link(Request{
		Targets:     []filesystem.Path{tmp.Join("a")},
		Destination: tmp.Join("b"),
		Options:     &Options{Symbolic: true},
	})
	require.NoError(t, err)
	assert.NotEqual(t, 0, code)
}

func TestUnlinkMissingPath(t *testing.T) {
	requireProgram(t, "unlink")

	code, err := Unlink("/path/does/not/exist")
	require.NoError(t, err)
	assert.NotEqual(t, 0, code)
	assert.Greater(t, code, 0)
}

func assertLink(t *testing.T, path filesystem.Path, target filesystem.Path) {
	link, err := path.Readlink()
	if err != nil {
		t.Fatalf("Readlink %s: %s", path, err)
	}

	require.Equal(t, target, link)
}
