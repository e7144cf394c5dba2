package logging

import (
	"os"

	"github.com/Station-Manager/errors"
	"github.com/goccy/go-json"
)

// Config controls the zerolog-backed Service sink.
type Config struct {
	// Level is the minimum severity written; one of the seven severity names.
	Level         string `json:"Level" validate:"required,severity"`
	WithTimestamp bool   `json:"WithTimestamp"`

	ConsoleLogging    bool   `json:"ConsoleLogging"`
	ConsoleNoColor    bool   `json:"ConsoleNoColor"`
	ConsoleTimeFormat string `json:"ConsoleTimeFormat"`

	FileLogging bool `json:"FileLogging"`
	// FileName is the log file's base name without extension. Defaults to "app".
	FileName          string `json:"FileName" validate:"omitempty,excludesall=/"`
	RelLogFileDir     string `json:"RelLogFileDir" validate:"required,reldir"`
	LogFileMaxBackups int    `json:"LogFileMaxBackups" validate:"gte=0,lte=1000"`
	LogFileMaxAgeDays int    `json:"LogFileMaxAgeDays" validate:"gte=0,lte=3650"`
	LogFileMaxSizeMB  int    `json:"LogFileMaxSizeMB" validate:"gte=0,lte=10240"`
	LogFileCompress   bool   `json:"LogFileCompress"`

	ShutdownTimeoutMS      int  `json:"ShutdownTimeoutMS" validate:"gte=0,lte=60000"`
	ShutdownTimeoutWarning bool `json:"ShutdownTimeoutWarning"`
}

// DefaultConfig returns console-only logging at info level.
func DefaultConfig() Config {
	return Config{
		Level:             SeverityInfo.String(),
		WithTimestamp:     true,
		ConsoleLogging:    true,
		FileName:          "app",
		RelLogFileDir:     "logs",
		LogFileMaxBackups: 3,
		LogFileMaxAgeDays: 7,
		LogFileMaxSizeMB:  10,
		ShutdownTimeoutMS: 1000,
	}
}

// LoadConfig reads a JSON config file. Keys absent from the file keep their
// DefaultConfig values. The result is validated before it is returned.
func LoadConfig(path string) (*Config, error) {
	const op errors.Op = "logging.LoadConfig"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgReadConfig)
	}

	cfg := DefaultConfig()
	if err = json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgDecodeConfig)
	}
	if err = validateConfig(&cfg); err != nil {
		return nil, errors.New(op).Err(err).Msg(err.Error())
	}
	return &cfg, nil
}
