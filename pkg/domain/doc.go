// Package domain contains the core value types of the LabScript workflow:
// robot configuration, deck layout tables, generation artifacts, simulation
// outcomes and the error taxonomy shared by every layer.
//
// Everything in this package is pure data and pure functions. Validation
// helpers (slot tables, instrument tables, status derivation) are stateless
// lookups; nothing here performs I/O.
package domain
