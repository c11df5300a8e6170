package params

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the params YAML file, strict-decodes it, and validates it.
// SSOT 핵심: KnownFields(true)로 오타/미사용 필드 즉시 실패
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params: %w", err)
	}

	var p Params
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // unknown keys are errors
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := Validate(&p); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	return &p, nil
}

// Hash generates a SHA-256 hash from Params (canonical JSON).
// Struct marshalling keeps field order deterministic, so identical
// parameter content always hashes identically. This mirrors the
// content-hash staleness model DVC applies to the same file.
func Hash(p *Params) (string, error) {
	jsonBytes, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
