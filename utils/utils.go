package utils

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// InitLogging configures console + file logging. Messages always go to the
// console; everything (including debug detail) is duplicated into logFile.
func InitLogging(logFile string, debug bool) error {
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.SetOutput(os.Stdout)
		return fmt.Errorf("failed to open %s, logging to console only: %w", logFile, err)
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, f))
	return nil
}

// LogMessage logs a message. debug marks it as debug-level detail, shown
// only when debug logging is enabled.
func LogMessage(message string, debug bool) {
	if debug {
		logger.Debug(message)
	} else {
		logger.Info(message)
	}
}

// FormatSize converts bytes to human-readable string (KB, MB, GB)
func FormatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	if size >= GB {
		return fmt.Sprintf("%.2fGB", float64(size)/float64(GB))
	}
	if size >= MB {
		return fmt.Sprintf("%.2fMB", float64(size)/float64(MB))
	}
	if size >= KB {
		return fmt.Sprintf("%.2fKB", float64(size)/float64(KB))
	}

	return fmt.Sprintf("%dB", size)
}

// ParseSize parses size string with units (e.g., 4K, 64K, 1G)
func ParseSize(sizeStr string) (int64, error) {
	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))
	var multiplier int64 = 1

	suffixes := []struct {
		unit string
		mult int64
	}{
		{"KB", 1024},
		{"MB", 1024 * 1024},
		{"GB", 1024 * 1024 * 1024},
		{"K", 1024},
		{"M", 1024 * 1024},
		{"G", 1024 * 1024 * 1024},
	}

	for _, s := range suffixes {
		if strings.HasSuffix(sizeStr, s.unit) {
			multiplier = s.mult
			sizeStr = sizeStr[:len(sizeStr)-len(s.unit)]
			break
		}
	}

	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil {
		return 0, err
	}

	return size * multiplier, nil
}
