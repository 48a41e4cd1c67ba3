package pbir

import (
	"github.com/rs/zerolog"

	"github.com/tsawler/pbir/schema"
)

// normalizeOptions holds configuration for a normalization run.
type normalizeOptions struct {
	validator schema.Validator
	logger    zerolog.Logger
}

// defaultOptions returns the default normalization options: the
// built-in required-keys validator and no logging.
func defaultOptions() normalizeOptions {
	return normalizeOptions{
		validator: schema.DefaultRequiredKeys(),
		logger:    zerolog.Nop(),
	}
}

// WithValidator returns a Normalizer using the given validator for
// per-document schema checks. Validation failures become warnings,
// never errors. Pass schema.Nop{} to disable checking entirely.
func (n *Normalizer) WithValidator(v schema.Validator) *Normalizer {
	c := n.clone()
	c.options.validator = v
	return c
}

// WithLogger returns a Normalizer that traces its dispatch loop to the
// given logger at debug level. The library never logs above debug;
// results are reported through the warnings and errors channels.
func (n *Normalizer) WithLogger(logger zerolog.Logger) *Normalizer {
	c := n.clone()
	c.options.logger = logger
	return c
}
