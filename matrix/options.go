// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - No dead switches: each flag impacts behavior and is covered by tests.

package matrix

// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
const DefaultValidateNaNInf = true

// Option configures Dense construction.
type Option func(*options)

type options struct {
	validateNaNInf bool
}

// WithAllowNaNInf disables the finite-value policy, so NaN and ±Inf may be
// stored. Useful for tables that mark missing cells with NaN.
func WithAllowNaNInf() Option {
	return func(o *options) { o.validateNaNInf = false }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) options {
	o := options{validateNaNInf: DefaultValidateNaNInf}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
