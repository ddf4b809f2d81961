// Package glauber implements single-spin-flip Glauber (heat-bath)
// dynamics for the 2D Ising ferromagnet.
//
//   - [Rule]: the acceptance probability 1/(1+exp(dE/T)) with a clamped
//     exponent, so extreme dE/T saturates instead of overflowing
//   - [Dynamics]: owns a lattice and a seeded random source, and exposes
//     the update hierarchy: Attempt (one site), Sweep (N^2 attempts),
//     AdvanceFrame (one sweep plus a renderer snapshot)
//
// # Determinism
//
// All randomness flows through the one rand.Rand held by [Dynamics], so a
// fixed seed reproduces lattice initialization and every accept/reject
// decision:
//
//	d := glauber.New(lat, 42)
//	d.Reset()
//	d.Sweep(1.8)
//
// # Thread Safety
//
// Dynamics instances are NOT thread-safe. Each update depends on the
// state left by the previous one; updates must stay sequential.
package glauber
