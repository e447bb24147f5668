package tablefmt

import (
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
	"golang.org/x/crypto/blake2b"

	"github.com/dekarrin/lalrrun/parser"
)

// binaryArtifact is the rezi-encoded wire form of a StateMachine. It's kept
// separate from parser.StateMachine itself so the runtime's hot-path types
// never need rezi struct tags or codec awareness.
type binaryArtifact struct {
	Start       int
	StartSymbol int
	End         int
	Error       int
	Symbols     []tomlSymbol
	States      []tomlState
	Actions     []tomlAction
}

func toBinaryArtifact(sm *parser.StateMachine) *binaryArtifact {
	doc := toDocument(sm)
	return &binaryArtifact{
		Start:       doc.Start,
		StartSymbol: doc.StartSymbol,
		End:         doc.End,
		Error:       doc.Error,
		Symbols:     doc.Symbols,
		States:      doc.States,
		Actions:     doc.Actions,
	}
}

func (b *binaryArtifact) toStateMachine() (*parser.StateMachine, error) {
	return fromDocument(document{
		Start:       b.Start,
		StartSymbol: b.StartSymbol,
		End:         b.End,
		Error:       b.Error,
		Symbols:     b.Symbols,
		States:      b.States,
		Actions:     b.Actions,
	})
}

// EncodeBinary renders sm as a rezi-encoded binary table artifact.
func EncodeBinary(sm *parser.StateMachine) []byte {
	return rezi.EncBinary(toBinaryArtifact(sm))
}

// DecodeBinary parses a StateMachine from a rezi-encoded binary table
// artifact. It returns an error if data contains trailing bytes rezi did
// not consume, which indicates a truncated or corrupted artifact.
func DecodeBinary(data []byte) (*parser.StateMachine, error) {
	var art binaryArtifact
	n, err := rezi.DecBinary(data, &art)
	if err != nil {
		return nil, fmt.Errorf("rezi decode: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("table artifact decoded byte count mismatch; consumed %d/%d bytes", n, len(data))
	}
	return art.toStateMachine()
}

// LoadBinary reads and decodes a StateMachine from a rezi binary table
// artifact file at path.
func LoadBinary(path string) (*parser.StateMachine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return DecodeBinary(data)
}

// SaveBinary writes sm to path as a rezi binary table artifact.
func SaveBinary(path string, sm *parser.StateMachine) error {
	if err := os.WriteFile(path, EncodeBinary(sm), 0644); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// Checksum returns the blake2b-256 checksum of data, used to detect
// corruption or tampering in a table artifact independent of which
// encoding (TOML or binary) produced it.
func Checksum(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// VerifyChecksum reports whether data matches the given blake2b-256
// checksum.
func VerifyChecksum(data []byte, want [32]byte) bool {
	return Checksum(data) == want
}
