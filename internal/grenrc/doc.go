// Package grenrc provides the typed configuration consumed by the gren
// changelog generator.
//
// This package implements:
//   - the Config record and its built-in presets (baseline, extended)
//   - load-time validation with field-level errors
//   - JSON and YAML codecs that keep the declared group order
//   - loading from .grenrc files with environment overrides via koanf
//   - label classification and template slot expansion helpers
//
// The commit template slot names a registered formatter rather than holding
// executable code, so a Config stays plain data from load to use.
package grenrc
