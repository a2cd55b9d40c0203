// SPDX-License-Identifier: MIT

// Package phase names the seismic phases and measurement attributes that
// select an uncertainty table.
//
// A Phase is a wave-path category (Pn, Sn, Pg, Lg). An Attribute is the
// measured quantity (travel time, horizontal slowness, azimuth) and also
// decides the angular-unit conversion applied when a table moves between
// its file form (degrees) and its in-memory form (radians).
//
// Both mappings are plain switch statements: there is no registry and no
// mutable package state.
//
//	p, _ := phase.ParsePhase("Pn")
//	a, _ := phase.ParseAttribute("SH")
//	name := "Uncertainty_" + p.String() + "_" + a.String() + ".txt"
package phase
