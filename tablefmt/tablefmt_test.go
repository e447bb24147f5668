package tablefmt_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lalrrun/parser"
	"github.com/dekarrin/lalrrun/tablefmt"
)

// fixtureMachine builds a tiny two-state StateMachine exercising every
// field tablefmt round-trips: a terminal, a nonterminal, an end symbol, an
// error symbol, one shift, and one reduce with a bound action.
func fixtureMachine() *parser.StateMachine {
	return &parser.StateMachine{
		Start:       0,
		StartSymbol: 2,
		End:         1,
		Error:       3,
		Symbols: []parser.Symbol{
			{ID: 0, Name: "a", Kind: parser.Terminal},
			{ID: 1, Name: "$", Kind: parser.EndSymbol},
			{ID: 2, Name: "S", Kind: parser.NonTerminal},
			{ID: 3, Name: "error", Kind: parser.ErrorSymbol},
		},
		Actions: []parser.ActionDescriptor{
			{ID: 0, Identifier: "reduce_S_a"},
		},
		States: []parser.State{
			{ID: 0, Transitions: []parser.Transition{
				{Input: 0, Kind: parser.Shift, Target: 1},
			}},
			{ID: 1, Transitions: []parser.Transition{
				{Input: 1, Kind: parser.Reduce, ReducedSymbol: 2, ReducedLength: 1, ActionIndex: 0},
			}},
		},
	}
}

func assertMachinesEqual(t *testing.T, want, got *parser.StateMachine) {
	t.Helper()
	assert.Equal(t, want.Start, got.Start)
	assert.Equal(t, want.StartSymbol, got.StartSymbol)
	assert.Equal(t, want.End, got.End)
	assert.Equal(t, want.Error, got.Error)
	assert.Equal(t, want.Symbols, got.Symbols)
	assert.Equal(t, want.Actions, got.Actions)
	assert.Equal(t, want.States, got.States)
}

func TestTOML_RoundTrip(t *testing.T) {
	require := require.New(t)

	sm := fixtureMachine()
	data, err := tablefmt.EncodeTOML(sm)
	require.NoError(err)

	got, err := tablefmt.DecodeTOML(data)
	require.NoError(err)
	assertMachinesEqual(t, sm, got)
}

func TestTOML_SaveLoadFile(t *testing.T) {
	require := require.New(t)

	sm := fixtureMachine()
	path := filepath.Join(t.TempDir(), "table.toml")
	require.NoError(tablefmt.SaveTOML(path, sm))

	got, err := tablefmt.LoadTOML(path)
	require.NoError(err)
	assertMachinesEqual(t, sm, got)
}

func TestBinary_RoundTrip(t *testing.T) {
	require := require.New(t)

	sm := fixtureMachine()
	data := tablefmt.EncodeBinary(sm)
	require.NotEmpty(data)

	got, err := tablefmt.DecodeBinary(data)
	require.NoError(err)
	assertMachinesEqual(t, sm, got)
}

func TestBinary_SaveLoadFile(t *testing.T) {
	require := require.New(t)

	sm := fixtureMachine()
	path := filepath.Join(t.TempDir(), "table.bin")
	require.NoError(tablefmt.SaveBinary(path, sm))

	got, err := tablefmt.LoadBinary(path)
	require.NoError(err)
	assertMachinesEqual(t, sm, got)
}

func TestBinary_DecodeRejectsTrailingGarbage(t *testing.T) {
	sm := fixtureMachine()
	data := tablefmt.EncodeBinary(sm)
	data = append(data, 0xFF, 0xFF, 0xFF)

	_, err := tablefmt.DecodeBinary(data)
	assert.Error(t, err)
}

func TestChecksum_DetectsTampering(t *testing.T) {
	assert := assert.New(t)

	data := []byte("a table artifact")
	sum := tablefmt.Checksum(data)

	assert.True(tablefmt.VerifyChecksum(data, sum))
	assert.False(tablefmt.VerifyChecksum([]byte("a tampered artifact"), sum))
}

func TestEnvelope_SignAndVerify(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	key := []byte("test-signing-key")
	data := []byte("table artifact bytes")

	tok, err := tablefmt.SignEnvelope(data, key, time.Hour)
	require.NoError(err)

	assert.NoError(tablefmt.VerifyEnvelope(tok, key, data))
}

func TestEnvelope_RejectsWrongKey(t *testing.T) {
	require := require.New(t)

	data := []byte("table artifact bytes")
	tok, err := tablefmt.SignEnvelope(data, []byte("real-key"), time.Hour)
	require.NoError(err)

	err = tablefmt.VerifyEnvelope(tok, []byte("wrong-key"), data)
	assert.Error(t, err)
}

func TestEnvelope_RejectsTamperedArtifact(t *testing.T) {
	require := require.New(t)

	key := []byte("test-signing-key")
	data := []byte("table artifact bytes")
	tok, err := tablefmt.SignEnvelope(data, key, time.Hour)
	require.NoError(err)

	err = tablefmt.VerifyEnvelope(tok, key, []byte("tampered bytes"))
	assert.Error(t, err)
}

func TestEnvelope_RejectsExpiredToken(t *testing.T) {
	require := require.New(t)

	key := []byte("test-signing-key")
	data := []byte("table artifact bytes")
	tok, err := tablefmt.SignEnvelope(data, key, -time.Minute)
	require.NoError(err)

	err = tablefmt.VerifyEnvelope(tok, key, data)
	assert.Error(t, err)
}
