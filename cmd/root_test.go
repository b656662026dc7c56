package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lca-cli/internal/config"
)

// testConfig installs a default configuration backed by a temp sqlite file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.Log = config.LogConfig{Level: "info", Format: "json"}
	c.Store = config.StoreConfig{Driver: "sqlite", DatabaseURL: t.TempDir() + "/lca.db", MaxConns: 10, MinConns: 2}
	c.Assessment = config.AssessmentConfig{ReferenceYear: 2024, Concurrency: 2}
	cfg = c
	return c
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"assess", "factors", "runs"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "lca-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestApplyLogFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want config.LogConfig
	}{
		{"unchanged", nil, config.LogConfig{Level: "warn", Format: "json"}},
		{"level", []string{"--log-level", "debug"}, config.LogConfig{Level: "debug", Format: "json"}},
		{"format", []string{"--log-format", "console"}, config.LogConfig{Level: "warn", Format: "console"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "x"}
			cmd.Flags().String("log-level", "info", "")
			cmd.Flags().String("log-format", "json", "")
			require.NoError(t, cmd.ParseFlags(tt.args))

			lc := config.LogConfig{Level: "warn", Format: "json"}
			applyLogFlags(cmd, &lc)
			assert.Equal(t, tt.want, lc)
		})
	}
}

func TestAssessCommand_Flags(t *testing.T) {
	for _, name := range []string{"format", "out", "weighting", "normalization", "concurrency", "store"} {
		assert.NotNil(t, assessCmd.Flags().Lookup(name), "assess should have --%s flag", name)
	}
	assert.Equal(t, "json", assessCmd.Flags().Lookup("format").DefValue)
}

func TestFactorsCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range factorsCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"list", "import", "export", "migrate"} {
		assert.True(t, names[name], "factors should have subcommand %q", name)
	}
}

func TestRunsListCommand_Flags(t *testing.T) {
	flag := runsListCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "50", flag.DefValue)
}
