// SPDX-License-Identifier: MIT

// Package uncertainty models the uncertainty of a seismic observation
// (travel time, horizontal slowness or azimuth) as a table over angular
// distance and source depth.
//
// What is a Grid?
//
//	A Grid holds strictly increasing distance samples (degrees), optional
//	strictly increasing depth samples (km), and one row of values per depth
//	(a single row when the table has no depth axis). Values live in internal
//	units: radians for azimuth, seconds per radian for slowness, seconds for
//	travel time.
//
// Queries:
//
//	v := g.Value(distanceRadians, depthKm)
//	s := g.Variance(distanceRadians, depthKm)
//
//	Both blend the four surrounding samples bilinearly. Queries beyond the
//	last distance or the last depth clamp to the edge sample. Queries below
//	the first sample are extrapolated linearly from the first interval.
//
// Encodings:
//
//   - Text:   ReadText / ReadFile / LoadDir and WriteText / WriteFile / WriteDir.
//     Whitespace-delimited tokens, "#" before each value row, angular values
//     in degrees.
//   - Binary: ReadBinary / WriteBinary. Little-endian int32 counts and
//     float64 samples, angular values in degrees.
//   - Buffer: Serialize / Deserialize on a Buffer. Length-prefixed header
//     strings, values kept in internal units; a negative phase means "no grid".
//
// File names follow Uncertainty_<Phase>_<Attribute>.txt (see FileName).
//
// Queries never mutate a Grid, so concurrent queries on a loaded table are safe.
package uncertainty
