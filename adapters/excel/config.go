package excel

import (
	"edaviz/adapters/coercer"
)

// ReaderConfig holds limits and coercion rules for ingestion
type ReaderConfig struct {
	MaxBytes int64                  `json:"max_bytes"`
	MaxRows  int                    `json:"max_rows"`
	Coercion coercer.CoercionConfig `json:"coercion"`
}

// DefaultReaderConfig returns sensible defaults for file ingestion
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MaxBytes: 50 * 1024 * 1024, // 50MB
		MaxRows:  1_000_000,
		Coercion: coercer.DefaultCoercionConfig(),
	}
}
