package runtimecfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lalrrun/parser"
	"github.com/dekarrin/lalrrun/runtimecfg"
)

func TestConfig_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := runtimecfg.Config{}.FillDefaults()
	assert.Equal(runtimecfg.RecoveryConsume, cfg.Recovery)
}

func TestConfig_Validate(t *testing.T) {
	assert := assert.New(t)

	cfg := runtimecfg.Config{TablePath: "t.toml"}.FillDefaults()
	assert.NoError(cfg.Validate())

	noPath := runtimecfg.Config{}.FillDefaults()
	assert.Error(noPath.Validate())

	badRecovery := runtimecfg.Config{TablePath: "t.toml", Recovery: "bogus"}
	assert.Error(badRecovery.Validate())

	negativeCap := runtimecfg.Config{TablePath: "t.toml", StackCapacityHint: -1}.FillDefaults()
	assert.Error(negativeCap.Validate())
}

func TestRecoveryPolicy_Mode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(parser.ConsumeLookaheadPerAttempt, runtimecfg.RecoveryConsume.Mode())
	assert.Equal(parser.PopErrorFrameOnRefailure, runtimecfg.RecoveryPop.Mode())
	assert.Equal(parser.ConsumeLookaheadPerAttempt, runtimecfg.RecoveryPolicy("").Mode())
}

func TestLoad_ParsesTOMLFile(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "lalrrun.toml")
	contents := "TablePath = \"calc.table.toml\"\nDebug = true\nRecovery = \"pop\"\nStackCapacityHint = 128\n"
	require.NoError(os.WriteFile(path, []byte(contents), 0644))

	cfg, err := runtimecfg.Load(path)
	require.NoError(err)

	assert.Equal("calc.table.toml", cfg.TablePath)
	assert.True(cfg.Debug)
	assert.Equal(runtimecfg.RecoveryPop, cfg.Recovery)
	assert.Equal(128, cfg.StackCapacityHint)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := runtimecfg.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}
