// SPDX-License-Identifier: MIT

// Package uncertainty documents the layout of the uncertainty module: lookup
// tables giving the expected uncertainty of a seismic observation as a
// function of epicentral distance and source depth.
//
// A table is selected by a phase (Pn, Sn, Pg, Lg) and an attribute (travel
// time TT, slowness SH, azimuth AZ). It samples distance in degrees along
// its columns and depth in km along its rows; queries blend the four
// neighbouring samples bilinearly and clamp at the last sample of each axis.
//
// Subpackages:
//
//	phase/            phase and attribute identifiers, names, unit factors
//	matrix/           dense row-major float64 storage and validators
//	uncertainty/      the Grid type, interpolation, text/binary/buffer codecs
//	internal/config/  viper-backed settings for the command
//	internal/logger/  zap logger construction
//	internal/fileio/  table file access with transparent gzip
//	cmd/uncertainty/  the command-line front end
//
// Quick start:
//
//	g, err := uncertainty.LoadDir("models", phase.Sn, phase.Slowness)
//	if err != nil {
//		return err
//	}
//	v := g.Value(12.5*math.Pi/180, 10) // seconds per radian
package uncertainty
