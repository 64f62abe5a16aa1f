package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclesp1d3r/threadhash/lib/config"
	"github.com/unclesp1d3r/threadhash/lib/cracker"
	"github.com/unclesp1d3r/threadhash/lib/crypter"
	"github.com/unclesp1d3r/threadhash/lib/testhelpers"
	"github.com/unclesp1d3r/threadhash/lib/wordlist"
)

// md5Passwords hashes plains with md5crypt, one salt per row.
func md5Passwords(t *testing.T, plains ...string) []string {
	t.Helper()

	salts := []string{"$1$aaaaaaaa$", "$1$bbbbbbbb$", "$1$cccccccc$", "$1$dddddddd$"}
	out := make([]string, 0, len(plains))

	for i, plain := range plains {
		stored, err := crypter.NewMD5().Crypt(plain, salts[i%len(salts)])
		require.NoError(t, err)

		out = append(out, stored)
	}

	return out
}

func newTestConfig(t *testing.T, passwords, words []string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	return &config.Config{
		PasswordFile:   testhelpers.CreateLineFile(t, dir, "passwords.txt", passwords),
		DictionaryFile: testhelpers.CreateLineFile(t, dir, "words.txt", words),
		Threads:        3,
		NiceValue:      10,
		CachePath:      filepath.Join(dir, "cache"),
	}
}

// TestExecute runs a complete crack writing results to stdout.
func TestExecute(t *testing.T) {
	passwords := md5Passwords(t, "dragon", "hunter2", "not-in-dictionary")
	cfg := newTestConfig(t, passwords, testhelpers.NewTestWords())

	var stdout, stderr bytes.Buffer
	report, err := execute(context.Background(), cfg, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, int64(2), report.Global.Cracked())
	assert.Equal(t, int64(1), report.Global.Failed)
	assert.False(t, report.Canceled)

	results := testhelpers.ResultsByHash(testhelpers.ParseOutput(t, stdout.String()))
	require.Len(t, results, 3)
	assert.Equal(t, "dragon", results[passwords[0]].Candidate)
	assert.Equal(t, "hunter2", results[passwords[1]].Candidate)

	assert.Contains(t, stderr.String(), "thread:  0")
	assert.Contains(t, stderr.String(), "total:   3")
}

// TestExecute_OutputFile verifies results go to the output file, truncating old content.
func TestExecute_OutputFile(t *testing.T) {
	cfg := newTestConfig(t, md5Passwords(t, "monkey"), testhelpers.NewTestWords())
	cfg.OutputFile = testhelpers.CreateTestFile(t, t.TempDir(), "out.txt", []byte(strings.Repeat("stale\n", 50)))

	var stdout, stderr bytes.Buffer
	_, err := execute(context.Background(), cfg, &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "cracked  monkey  $1$"))
	assert.NotContains(t, string(data), "stale")
}

// TestExecute_RemoteDictionary loads the dictionary over HTTP into the cache.
func TestExecute_RemoteDictionary(t *testing.T) {
	served := t.TempDir()
	testhelpers.CreateLineFile(t, served, "words.txt", testhelpers.NewTestWords())
	server := testhelpers.MockDownloadServer(t, served)

	cfg := newTestConfig(t, md5Passwords(t, "qwerty"), nil)
	cfg.DictionaryFile = server.URL + "/words.txt"

	var stdout, stderr bytes.Buffer
	report, err := execute(context.Background(), cfg, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Global.Cracked())

	entries, err := os.ReadDir(cfg.CachePath)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// TestExecute_Errors tests the fatal startup paths.
func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(t *testing.T, cfg *config.Config)
		expectedError error
	}{
		{
			name: "missing password file",
			mutate: func(_ *testing.T, cfg *config.Config) {
				cfg.PasswordFile = filepath.Join(filepath.Dir(cfg.PasswordFile), "missing.txt")
			},
			expectedError: wordlist.ErrNotFound,
		},
		{
			name: "missing dictionary",
			mutate: func(_ *testing.T, cfg *config.Config) {
				cfg.DictionaryFile = filepath.Join(filepath.Dir(cfg.DictionaryFile), "missing.txt")
			},
			expectedError: wordlist.ErrNotFound,
		},
		{
			name: "empty password file",
			mutate: func(t *testing.T, cfg *config.Config) {
				cfg.PasswordFile = testhelpers.CreateTestFile(t, t.TempDir(), "empty.txt", []byte("\n\n"))
			},
			expectedError: cracker.ErrNoPasswords,
		},
		{
			name: "output file cannot be opened",
			mutate: func(t *testing.T, cfg *config.Config) {
				cfg.OutputFile = filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t, md5Passwords(t, "dragon"), testhelpers.NewTestWords())
			tt.mutate(t, cfg)

			var stdout, stderr bytes.Buffer
			report, err := execute(context.Background(), cfg, &stdout, &stderr)
			require.Error(t, err)
			assert.Nil(t, report)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
			}
		})
	}
}

// TestExecute_Canceled verifies a canceled context yields a partial report.
func TestExecute_Canceled(t *testing.T) {
	cfg := newTestConfig(t, md5Passwords(t, "dragon", "monkey"), testhelpers.NewTestWords())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	report, err := execute(ctx, cfg, &stdout, &stderr)
	require.NoError(t, err)
	assert.True(t, report.Canceled)
	assert.Empty(t, stdout.String())
}

// TestExecute_StatusServer verifies a run with the status server enabled completes.
func TestExecute_StatusServer(t *testing.T) {
	cfg := newTestConfig(t, md5Passwords(t, "letmein"), testhelpers.NewTestWords())
	cfg.StatusAddr = "127.0.0.1:0"

	var stdout, stderr bytes.Buffer
	report, err := execute(context.Background(), cfg, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Global.Cracked())
}

// TestOpenOutput tests the openOutput function.
func TestOpenOutput(t *testing.T) {
	var stdout bytes.Buffer

	w, closeFn, err := openOutput("", &stdout)
	require.NoError(t, err)
	assert.Same(t, &stdout, w)
	closeFn()

	path := filepath.Join(t.TempDir(), "out.txt")
	w, closeFn, err = openOutput(path, &stdout)
	require.NoError(t, err)

	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}
