package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/cognicore/docparse/pkg/docparse/ingest"
	"github.com/cognicore/docparse/pkg/docparse/internalerr"
)

// Validate checks settings after defaults, file, and environment are
// applied. Failures wrap internalerr.ErrInvalidConfig.
func (s *Settings) Validate() error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.Port, validation.Required, is.Port),
		validation.Field(&s.Environment, validation.Required, validation.In("dev", "test", "prod")),
		validation.Field(&s.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&s.CORSOrigins, validation.Required),
		validation.Field(&s.MaxUploadBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.MaxTextBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.Analysis),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return nil
}

// Validate implements validation.Validatable. Caps may only be lowered.
func (a Analysis) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.MaxTags, validation.Min(0), validation.Max(ingest.DefaultMaxTags)),
		validation.Field(&a.MaxKeywords, validation.Min(0), validation.Max(ingest.DefaultMaxKeywords)),
		validation.Field(&a.MaxPhrases, validation.Min(0), validation.Max(ingest.DefaultMaxPhrases)),
		validation.Field(&a.TagMaxLen, validation.Min(0)),
		validation.Field(&a.PhraseWindows, validation.In("filtered", "contiguous")),
	)
}
