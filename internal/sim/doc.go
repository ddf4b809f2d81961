// Package sim drives batch Ising runs across a temperature schedule.
//
//   - [Schedule]: ordered temperature sequence; [DefaultSchedule] is the
//     standard [1.0, 3.0) range stepped by 0.1
//   - [Runner]: per temperature, re-initializes the lattice, runs the
//     configured sweeps, and records observables past the thermalization
//     cutoff (sweep 99, then every 10th)
//   - [Sample]: one (temperature, energy, magnetization) record
//   - [Metric], [Observer]: accumulation and progress hooks
//
// # Example
//
//	r, _ := sim.NewRunner(sim.Config{Dimensions: 50, Sweeps: 150, Seed: 42})
//	result, _ := r.Run(ctx)
package sim
