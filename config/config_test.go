package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adrg/xdg"
	"github.com/miku/collabnet"
	"github.com/miku/collabnet/coauthor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, "wos", c.Profile)
	assert.Equal(t, 1, c.Threshold)
	assert.Equal(t, "graphml", c.Format)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	require.NoError(t, c.Validate())
}

func TestLoadEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("COLLABNET_PROFILE", "scopus")
	t.Setenv("COLLABNET_THRESHOLD", "3")
	t.Setenv("COLLABNET_STRICT", "true")
	t.Setenv("COLLABNET_WORKERS", "2")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "scopus", c.Profile)
	assert.Equal(t, 3, c.Threshold)
	assert.True(t, c.Strict)
	assert.Equal(t, 2, c.Workers)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("COLLABNET_FORMAT", "dot")
	require.NoError(t, os.WriteFile(".env", []byte("COLLABNET_DATA_DIR=exports\nCOLLABNET_FORMAT=graphml\n"), 0644))
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "exports", c.DataDir)
	assert.Equal(t, "dot", c.Format, "environment wins over .env")
	os.Unsetenv("COLLABNET_DATA_DIR")

	fn := filepath.Join(dir, "other.env")
	require.NoError(t, os.WriteFile(fn, []byte("COLLABNET_POLICY=citations\n"), 0644))
	c, err = Load(fn)
	require.NoError(t, err)
	assert.Equal(t, "citations", c.Policy)
	os.Unsetenv("COLLABNET_POLICY")

	_, err = Load(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("COLLABNET_THRESHOLD", "many")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Threshold: 1, Format: "graphml", Match: "index", LogLevel: "info"}
	}
	var cases = []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"threshold", func(c *Config) { c.Threshold = 0 }, "threshold"},
		{"policy", func(c *Config) { c.Policy = "h-index" }, "policy"},
		{"format", func(c *Config) { c.Format = "gexf" }, "format"},
		{"match", func(c *Config) { c.Match = "fuzzy" }, "match"},
		{"compression", func(c *Config) { c.Compression = ".bz2" }, "compression"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.modify(c)
			err := c.Validate()
			var ce *coauthor.ConfigurationError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tc.field, ce.Field)
		})
	}
}

func TestValidateCanonicalizes(t *testing.T) {
	c := &Config{Threshold: 2, Format: "DOT", Match: "Scan", LogLevel: "debug", Compression: ".gz"}
	require.NoError(t, c.Validate())
	assert.Equal(t, "dot", c.Format)
	assert.Equal(t, "scan", c.Match)
	c.OutputDir = "out"
	assert.Equal(t, filepath.Join("out", "collab-wos-t2-citations.dot.gz"), c.OutputPath("wos", coauthor.PolicyCitations))
}

func TestDefaultProfilesFile(t *testing.T) {
	want := filepath.Join(xdg.ConfigHome, collabnet.AppName, "profiles.yaml")
	assert.Equal(t, want, DefaultProfilesFile)
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir, which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
