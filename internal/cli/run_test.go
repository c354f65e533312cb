package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FileComparator/internal/compare"
)

const defaultChunkWarning = "Invalid buffer size. Using default 4096 bytes."

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatalf("write file %s: %v", p, err)
	}
	return p
}

// runCLI executes a fresh root command with an isolated config directory.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// a nil slice would make cobra fall back to os.Args
	if args == nil {
		args = []string{}
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRun_Arguments(t *testing.T) {
	dir := t.TempDir()
	hello := writeFile(t, dir, "hello.txt", []byte("hello"))
	hello2 := writeFile(t, dir, "hello2.txt", []byte("hello"))
	hellp := writeFile(t, dir, "hellp.txt", []byte("hellp"))
	shorter := writeFile(t, dir, "shorter.txt", []byte("shorter"))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "identical", args: []string{hello, hello2}, want: "Files are identical."},
		{name: "identical with chunk size", args: []string{hello, hello2, "2"}, want: "Files are identical."},
		{name: "content differs", args: []string{hello, hellp}, want: "Files are not identical."},
		{name: "size differs", args: []string{hello, shorter, "1"}, want: "Files are not identical."},
		{name: "chunk size flag", args: []string{"-c", "3", hello, hellp}, want: "Files are not identical."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, "", tt.args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.want)
			assert.Regexp(t, `Comparison took \d+\.\d{4} seconds\.`, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRun_InvalidPositionalChunkSize(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello"))
	b := writeFile(t, dir, "b.txt", []byte("hello"))

	tests := []struct {
		name string
		args []string
	}{
		{name: "not a number", args: []string{a, b, "abc"}},
		{name: "zero", args: []string{a, b, "0"}},
		{name: "negative after terminator", args: []string{"--", a, b, "-4"}},
		{name: "too large", args: []string{a, b, "1073741824"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, "", append([]string{"--json"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, stderr, defaultChunkWarning)

			var got jsonResult
			require.NoError(t, json.Unmarshal([]byte(stdout), &got))
			assert.True(t, got.Identical)
			assert.Equal(t, compare.DefaultChunkSize, got.ChunkSize)
		})
	}
}

func TestRun_InvalidPositionalChunkSizeUsesConfigDefault(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello"))
	cfgPath := writeFile(t, dir, "config.yaml", []byte("json: true\nchunk_size: 65536\n"))

	stdout, stderr, err := runCLI(t, "", "--config", cfgPath, a, a, "abc")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Invalid buffer size. Using default 65536 bytes.")

	var got jsonResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 65536, got.ChunkSize)
}

func TestRun_Interactive(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello"))
	b := writeFile(t, dir, "b.txt", []byte("hellp"))

	t.Run("all values prompted", func(t *testing.T) {
		stdout, stderr, err := runCLI(t, a+"\n"+b+"\n16\n")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Enter path for first file: ")
		assert.Contains(t, stdout, "Enter path for second file: ")
		assert.Contains(t, stdout, "Enter buffer size in bytes (default 4096): ")
		assert.Contains(t, stdout, "Files are not identical.")
		assert.Empty(t, stderr)
	})

	chunkAnswers := []struct {
		name  string
		stdin string
	}{
		{name: "empty chunk size warns", stdin: a + "\n" + a + "\n\n"},
		{name: "chunk size at end of input warns", stdin: a + "\n" + a + "\n"},
		{name: "invalid chunk size warns", stdin: a + "\n" + a + "\nlots\n"},
	}
	for _, tt := range chunkAnswers {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tt.stdin, "--json")
			require.NoError(t, err)
			assert.Contains(t, stderr, defaultChunkWarning)

			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(stdout[strings.Index(stdout, "{"):]), &got))
			assert.Equal(t, float64(compare.DefaultChunkSize), got["chunk_size"])
			assert.Equal(t, true, got["identical"])
		})
	}

	t.Run("empty chunk size uses config default", func(t *testing.T) {
		cfgPath := writeFile(t, t.TempDir(), "config.yaml", []byte("json: true\nchunk_size: 65536\n"))
		stdout, stderr, err := runCLI(t, a+"\n"+a+"\n\n", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Enter buffer size in bytes (default 65536): ")
		assert.Contains(t, stderr, "Invalid buffer size. Using default 65536 bytes.")

		var got jsonResult
		require.NoError(t, json.Unmarshal([]byte(stdout[strings.Index(stdout, "{"):]), &got))
		assert.Equal(t, 65536, got.ChunkSize)
	})

	t.Run("path with surrounding blanks", func(t *testing.T) {
		spaced := writeFile(t, t.TempDir(), " spaced.txt ", []byte("hello"))
		stdout, _, err := runCLI(t, spaced+"\r\n"+a+"\n8\n")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Files are identical.")
	})

	t.Run("first path from arguments", func(t *testing.T) {
		stdout, _, err := runCLI(t, b+"\n\n", a)
		require.NoError(t, err)
		assert.NotContains(t, stdout, "Enter path for first file")
		assert.Contains(t, stdout, "Enter path for second file: ")
		assert.Contains(t, stdout, "Files are not identical.")
	})

	t.Run("chunk flag skips chunk prompt", func(t *testing.T) {
		stdout, _, err := runCLI(t, a+"\n"+a+"\n", "--chunk-size", "2")
		require.NoError(t, err)
		assert.NotContains(t, stdout, "Enter buffer size")
		assert.Contains(t, stdout, "Files are identical.")
	})

	t.Run("empty path", func(t *testing.T) {
		_, _, err := runCLI(t, "\n")
		require.Error(t, err)
		assert.Equal(t, ExitUsageError, ExitCodeOf(err))
	})

	t.Run("no input", func(t *testing.T) {
		_, _, err := runCLI(t, "")
		require.Error(t, err)
		assert.Equal(t, ExitUsageError, ExitCodeOf(err))
	})
}

func TestRun_FileErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello"))
	missing := filepath.Join(dir, "missing.txt")

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing left", args: []string{missing, a}},
		{name: "missing right", args: []string{a, missing}},
		{name: "directory", args: []string{dir, a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitFileError, ExitCodeOf(err))

			var openErr *compare.OpenError
			assert.True(t, errors.As(err, &openErr))
			assert.NotContains(t, stdout, "Files are")
		})
	}
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello"))
	b := writeFile(t, dir, "b.txt", []byte("hellp"))

	stdout, _, err := runCLI(t, "", "--json", a, b)
	require.NoError(t, err)

	var got jsonResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, a, got.Left)
	assert.Equal(t, b, got.Right)
	assert.False(t, got.Identical)
	assert.Equal(t, compare.ReasonContentMismatch, got.Reason)
	assert.Equal(t, int64(4), got.Offset)
	assert.Equal(t, int64(5), got.LeftSize)
}

func TestRun_Verbose(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("short"))
	b := writeFile(t, dir, "b.txt", []byte("shorter"))

	stdout, stderr, err := runCLI(t, "", "-v", a, b)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Files are not identical.")
	assert.Contains(t, stderr, "sizes differ: left=5 right=7")
	assert.Contains(t, stderr, "--- stats ---")
	assert.Contains(t, stderr, "comparison finished")
	assert.Contains(t, stderr, "bytes_compared: 0")
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello"))
	cfgPath := writeFile(t, dir, "config.yaml", []byte("json: true\nchunk_size: 2\n"))

	t.Run("explicit file", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "--config", cfgPath, a, a)
		require.NoError(t, err)

		var got jsonResult
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.True(t, got.Identical)
		assert.Equal(t, 2, got.ChunkSize)
	})

	t.Run("flags override file", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "--config", cfgPath, "--json=false", "-c", "8", a, a)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Files are identical.")
	})

	t.Run("default location", func(t *testing.T) {
		xdg := t.TempDir()
		writeFile(t, mkdir(t, xdg, "filecompare"), "config.yaml", []byte("json: true\n"))

		var stdout bytes.Buffer
		t.Setenv("XDG_CONFIG_HOME", xdg)
		cmd := NewRootCommand()
		cmd.SetArgs([]string{a, a})
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		require.NoError(t, cmd.Execute())
		assert.True(t, json.Valid(stdout.Bytes()))
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, _, err := runCLI(t, "", "--config", filepath.Join(dir, "nope.yaml"), a, a)
		require.Error(t, err)
		assert.Equal(t, ExitUsageError, ExitCodeOf(err))
	})

	t.Run("invalid file", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.yaml", []byte("chunk_size: -1\n"))
		_, _, err := runCLI(t, "", "--config", bad, a, a)
		require.Error(t, err)
		assert.Equal(t, ExitUsageError, ExitCodeOf(err))
	})
}

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(p, 0o755))
	return p
}

func TestRun_UsageErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello"))

	tests := []struct {
		name string
		args []string
	}{
		{name: "too many arguments", args: []string{a, a, "1", "extra"}},
		{name: "negative chunk size without terminator", args: []string{a, a, "-4"}},
		{name: "zero chunk flag", args: []string{"--chunk-size", "0", a, a}},
		{name: "huge chunk flag", args: []string{"--chunk-size", "1073741824", a, a}},
		{name: "unknown flag", args: []string{"--nope", a, a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitUsageError, ExitCodeOf(err))
		})
	}
}

func TestExecute(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello"))

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{a, filepath.Join(dir, "missing.txt")})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	code := Execute(cmd)
	assert.Equal(t, int(ExitFileError), code)
	assert.True(t, strings.HasPrefix(stderr.String(), "Error: could not open files"))

	cmd = NewRootCommand()
	cmd.SetArgs([]string{a, a})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	assert.Equal(t, int(ExitSuccess), Execute(cmd))
}

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeOf(nil))
	assert.Equal(t, ExitFileError, ExitCodeOf(WrapCLIError(ExitFileError, "x", errors.New("y"))))
	assert.Equal(t, ExitUsageError, ExitCodeOf(errors.New("unknown flag")))
}
