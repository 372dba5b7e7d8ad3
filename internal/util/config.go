package util

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

type configValue struct {
	envVarName   string
	required     bool
	errorMessage string
	defaultValue string
	Value        string
}

// Bool interprets the value as a boolean flag ("1", "true", "yes", "on").
func (v configValue) Bool() bool {
	switch strings.ToLower(strings.TrimSpace(v.Value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

type Config struct {
	DbConnectionString configValue
	CalibrationPath    configValue
	SourcesConfigPath  configValue
	OutputDir          configValue
	RetainStaleIds     configValue
	SeqUrl             configValue
	SeqToken           configValue
	Environment        configValue
}

func NewConfig() *Config {
	const dbConnectionStringName = "DB_CONNECTION_STRING"
	const calibrationPathName = "CALIBRATION_PATH"
	const sourcesConfigPathName = "SOURCES_CONFIG_PATH"
	const outputDirName = "OUTPUT_DIR"
	const retainStaleIdsName = "RETAIN_STALE_IDS"
	const seqUrlName = "SEQ_URL"
	const seqTokenName = "SEQ_TOKEN"
	const environmentName = "ENVIRONMENT"

	return &Config{
		DbConnectionString: configValue{
			envVarName:   dbConnectionStringName,
			required:     true,
			errorMessage: fmt.Sprintf("make sure that environment variable %s is set and in DSN format", dbConnectionStringName),
		},
		CalibrationPath: configValue{
			envVarName:   calibrationPathName,
			required:     false,
			defaultValue: "config/criteres_recherche_immo.xlsx",
		},
		SourcesConfigPath: configValue{
			envVarName:   sourcesConfigPathName,
			required:     false,
			defaultValue: "config/sources.yaml",
		},
		OutputDir: configValue{
			envVarName:   outputDirName,
			required:     false,
			defaultValue: "output",
		},
		RetainStaleIds: configValue{
			envVarName:   retainStaleIdsName,
			required:     false,
			defaultValue: "false",
		},
		SeqUrl: configValue{
			envVarName: seqUrlName,
			required:   false,
		},
		SeqToken: configValue{
			envVarName: seqTokenName,
			required:   false,
		},
		Environment: configValue{
			envVarName:   environmentName,
			required:     false,
			defaultValue: "development",
		},
	}
}

var config *Config

func GetConfig() *Config {
	if config == nil {
		return load()
	}

	return config
}

func load() *Config {
	config := NewConfig()

	values := []*configValue{
		&config.DbConnectionString,
		&config.CalibrationPath,
		&config.SourcesConfigPath,
		&config.OutputDir,
		&config.RetainStaleIds,
		&config.SeqUrl,
		&config.SeqToken,
		&config.Environment,
	}

	for _, v := range values {
		if err := populateEnv(v); err != nil {
			log.Fatal(err)
		}
	}

	return config
}

func populateEnv(m *configValue) (err error) {
	v := os.Getenv(m.envVarName)

	if v == "" && m.required {
		if m.errorMessage != "" {
			return errors.New(m.errorMessage)
		}

		return fmt.Errorf("environment variable %s is not set", m.envVarName)
	}

	if v == "" {
		m.Value = m.defaultValue
		return nil
	}

	m.Value = v
	return nil
}
