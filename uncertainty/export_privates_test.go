// SPDX-License-Identifier: MIT

package uncertainty

// Test bridge: exposes unexported helpers to package uncertainty_test.
var (
	// Locate exposes the bracketing search.
	Locate = locate
)
