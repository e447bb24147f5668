package tablefmt

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/lalrrun/parser"
)

// LoadTOML reads and parses a StateMachine from a TOML table artifact at
// path.
func LoadTOML(path string) (*parser.StateMachine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return DecodeTOML(data)
}

// DecodeTOML parses a StateMachine from an in-memory TOML document.
func DecodeTOML(data []byte) (*parser.StateMachine, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("parse table TOML: %w", err)
	}
	sm, err := fromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("convert table: %w", err)
	}
	return sm, nil
}

// SaveTOML writes sm to path as a TOML table artifact.
func SaveTOML(path string, sm *parser.StateMachine) error {
	data, err := EncodeTOML(sm)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// EncodeTOML renders sm as a TOML document.
func EncodeTOML(sm *parser.StateMachine) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toDocument(sm)); err != nil {
		return nil, fmt.Errorf("encode table TOML: %w", err)
	}
	return buf.Bytes(), nil
}
