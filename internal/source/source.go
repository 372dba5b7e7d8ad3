// Package source loads raw listing records for a run. Network collectors live
// outside this repository; they drop their harvest as JSON files which this
// package picks up according to sources.yaml. A broken or missing source file
// degrades to zero records from that source, never to a failed run.
package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Zia971/immo-opportunit-s/internal/log"
	"github.com/Zia971/immo-opportunit-s/internal/normalize"
	"gopkg.in/yaml.v3"
)

type SourceConfig struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

type Config struct {
	Sources []SourceConfig `yaml:"sources"`
}

// LoadConfig reads sources.yaml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config %s: %v", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sources config %s: %v", path, err)
	}

	return cfg, nil
}

// Collect reads every enabled source file and returns the concatenated raw
// records in config order. Records missing a source_name get the source's
// configured name.
func Collect(cfg *Config, logger log.Logger) []normalize.Record {
	var records []normalize.Record

	for _, src := range cfg.Sources {
		if !src.Enabled {
			continue
		}

		collected, err := readSourceFile(src.Path)
		if err != nil {
			logger.WithField("Source", src.Name).Warnf("skipping source: %v", err)
			continue
		}

		for _, rec := range collected {
			if _, ok := rec["source_name"]; !ok {
				rec["source_name"] = src.Name
			}
		}

		logger.WithField("Source", src.Name).WithField("RecordCount", len(collected)).Debug("collected source records")
		records = append(records, collected...)
	}

	return records
}

func readSourceFile(path string) ([]normalize.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %v", path, err)
	}

	var records []normalize.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse source file %s: %v", path, err)
	}

	return records, nil
}
