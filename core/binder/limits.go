package binder

import "os"

// TempFilePrefix prefixes every temporary file created for an uploaded part.
const TempFilePrefix = "yarfTmpFile_"

// Limits bounds what a single request body may contain. Non-positive values
// disable the corresponding check.
type Limits struct {
	TempDir      string `env:"UPLOAD_DIR"`
	MaxParts     int    `env:"UPLOAD_MAX_PARTS" envDefault:"1000"`
	MaxFields    int    `env:"UPLOAD_MAX_FIELDS" envDefault:"1000"`
	MaxFiles     int    `env:"UPLOAD_MAX_FILES" envDefault:"100"`
	MaxFieldSize int64  `env:"UPLOAD_MAX_FIELD_SIZE" envDefault:"1048576"`
	MaxFileSize  int64  `env:"UPLOAD_MAX_FILE_SIZE" envDefault:"0"`
	MaxJSONSize  int64  `env:"BODY_MAX_JSON_SIZE" envDefault:"1048576"`
	MaxRawSize   int64  `env:"BODY_MAX_RAW_SIZE" envDefault:"10485760"`
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxParts:     1000,
		MaxFields:    1000,
		MaxFiles:     100,
		MaxFieldSize: 1 << 20,
		MaxJSONSize:  1 << 20,
		MaxRawSize:   10 << 20,
	}
}

// Dir returns the directory for temporary upload files.
func (l Limits) Dir() string {
	if l.TempDir != "" {
		return l.TempDir
	}
	return os.TempDir()
}

func exceeds(count, limit int) bool {
	return limit > 0 && count > limit
}
