package storage

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"skillscape/local-app/pkg/model"
)

// FileExport exports a catalogue snapshot to a file in the specified format
// (JSON, XML or YAML).
func FileExport(catalogue *model.Catalogue, filename string, format string) error {
	// Marshal the catalogue to the specified format
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(catalogue, "", "  ")
	case "xml":
		data, err = xml.MarshalIndent(catalogue, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(catalogue)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal catalogue: %w", err)
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write the data to the file
	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport imports a catalogue snapshot from a file in the specified format
// (JSON, XML or YAML).
func FileImport(filename string, format string) (*model.Catalogue, error) {
	// Read the file
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Unmarshal the data into a catalogue structure
	var imported model.Catalogue
	switch format {
	case "json":
		err = json.Unmarshal(data, &imported)
	case "xml":
		err = xml.Unmarshal(data, &imported)
	case "yaml":
		err = yaml.Unmarshal(data, &imported)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return &imported, nil
}
