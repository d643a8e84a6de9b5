package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func fakeRunner(out string, err error, calls *[]call) Runner {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{name, args})
		return []byte(out), err
	}
}

func notTerminal(io.Reader) bool { return false }
func terminal(io.Reader) bool    { return true }

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crontab")
	require.NoError(t, os.WriteFile(path, []byte("* * * * * a\r\n#x\n"), 0o600))

	var calls []call
	tab, err := Read(context.Background(), Options{
		File:  path,
		Stdin: strings.NewReader("ignored"),
		Run:   fakeRunner("", nil, &calls),
	})
	require.NoError(t, err)
	assert.Equal(t, "file:"+path, tab.Name)
	assert.Equal(t, []string{"* * * * * a", "#x"}, tab.Lines)
	assert.Empty(t, calls)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(context.Background(), Options{File: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadUser(t *testing.T) {
	var calls []call
	tab, err := Read(context.Background(), Options{
		User:       "alice",
		Stdin:      strings.NewReader("ignored"),
		IsTerminal: notTerminal,
		Run:        fakeRunner("@daily backup\n", nil, &calls),
	})
	require.NoError(t, err)
	assert.Equal(t, "user:alice", tab.Name)
	assert.Equal(t, []string{"@daily backup"}, tab.Lines)
	require.Len(t, calls, 1)
	assert.Equal(t, call{"crontab", []string{"-l", "-u", "alice"}}, calls[0])
}

func TestReadStdin(t *testing.T) {
	var calls []call
	tab, err := Read(context.Background(), Options{
		Stdin:      strings.NewReader("* * * * * from-stdin"),
		IsTerminal: notTerminal,
		Run:        fakeRunner("", nil, &calls),
	})
	require.NoError(t, err)
	assert.Equal(t, "stdin", tab.Name)
	assert.Equal(t, []string{"* * * * * from-stdin"}, tab.Lines)
	assert.Empty(t, calls)
}

func TestReadCurrentUserWhenStdinIsTerminal(t *testing.T) {
	var calls []call
	tab, err := Read(context.Background(), Options{
		Stdin:      strings.NewReader(""),
		IsTerminal: terminal,
		Run:        fakeRunner("0 0 * * * mine\n", nil, &calls),
	})
	require.NoError(t, err)
	assert.Equal(t, "user:current", tab.Name)
	assert.Equal(t, []string{"0 0 * * * mine"}, tab.Lines)
	require.Len(t, calls, 1)
	assert.Equal(t, call{"crontab", []string{"-l"}}, calls[0])
}

func TestReadNoCrontab(t *testing.T) {
	var calls []call
	tab, err := Read(context.Background(), Options{
		User: "bob",
		Run:  fakeRunner("", ErrNoCrontab, &calls),
	})
	require.ErrorIs(t, err, ErrNoCrontab)
	require.NotNil(t, tab)
	assert.Equal(t, "user:bob", tab.Name)
	assert.Empty(t, tab.Lines)
}

func TestReadCommandFailure(t *testing.T) {
	var calls []call
	boom := errors.New("exec: crontab: not found")
	_, err := Read(context.Background(), Options{
		User: "bob",
		Run:  fakeRunner("", boom, &calls),
	})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNoCrontab)
}

func TestReadFileAndUser(t *testing.T) {
	_, err := Read(context.Background(), Options{File: "x", User: "y"})
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("")))

	f, err := os.Open(filepath.Join(t.TempDir()))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f), "a directory is not a terminal")
}
