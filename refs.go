package refalign

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/refalign/refalign/model"
)

// refsFile matches both supported shapes: a bare list of records, or a
// document with a top-level "references" key.
type refsFile struct {
	References []model.ReferenceRecord `json:"references" yaml:"references"`
}

// LoadReferences reads validated reference records from a YAML or JSON
// file, chosen by extension. The file may hold either a bare list or an
// object with a "references" key.
func LoadReferences(path string) ([]model.ReferenceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading references %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return parseReferences(data, yaml.Unmarshal)
	case ".json":
		return parseReferences(data, json.Unmarshal)
	default:
		return nil, fmt.Errorf("unsupported references format %q (want .yaml, .yml, or .json)", ext)
	}
}

func parseReferences(data []byte, unmarshal func([]byte, any) error) ([]model.ReferenceRecord, error) {
	var list []model.ReferenceRecord
	if err := unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	var wrapped refsFile
	if err := unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing references: %w", err)
	}
	if len(wrapped.References) == 0 {
		return nil, fmt.Errorf("no reference records found")
	}
	return wrapped.References, nil
}
