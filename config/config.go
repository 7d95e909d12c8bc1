// config/config.go
package config

import (
	"encoding/json"
	"os"
)

// Defaults returns the built-in configuration used when config.json is
// missing or a field is left unset.
func Defaults() Config {
	return Config{
		Debug:          false,
		RuntimeSeconds: 60,
		FioPath:        "fio",
		ScratchName:    "fio-scratch.dat",
		LogFile:        "diskbench.log",
	}
}

// LoadConfig loads configuration from config.json, falling back to
// Defaults for anything not present.
func LoadConfig() (Config, error) {
	config := Defaults()

	data, err := os.ReadFile("config.json")
	if err != nil {
		return config, err
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return Defaults(), err
	}

	if config.RuntimeSeconds <= 0 {
		config.RuntimeSeconds = Defaults().RuntimeSeconds
	}
	if config.FioPath == "" {
		config.FioPath = Defaults().FioPath
	}
	if config.ScratchName == "" {
		config.ScratchName = Defaults().ScratchName
	}
	if config.LogFile == "" {
		config.LogFile = Defaults().LogFile
	}

	return config, nil
}
