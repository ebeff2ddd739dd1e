package hostmaintcfg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither --config nor HOSTMAINT_CONFIG is given.
const DefaultPath = "/etc/hostmaint/hostmaint.yml"

// Load reads a YAML file from the given path and returns a deserialized Root.
// Unknown keys are rejected. Defaults and validation are applied separately.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a configuration document.
func Parse(data []byte) (*Root, error) {
	var cfg Root
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return &cfg, nil
}
