// config/types.go
package config

// Config structure
type Config struct {
	Debug          bool   `json:"debug"`
	RuntimeSeconds int    `json:"runtime_seconds"`
	FioPath        string `json:"fio_path"`
	ScratchName    string `json:"scratch_name"`
	LogFile        string `json:"log_file"`
}
