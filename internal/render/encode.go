package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Encode serializes a document for the given output path. JSON is the
// default; a .yaml/.yml or .toml extension on the path selects that encoding
// instead. Go's JSON and YAML encoders emit map keys sorted, which keeps the
// written files diff-stable across renders.
func Encode(doc map[string]interface{}, configPath string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal output to YAML: %w", err)
		}
		return data, nil
	case ".toml":
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal output to TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal output to JSON: %w", err)
		}
		return append(data, '\n'), nil
	}
}
