// Package xaj implements the Xinanjiang conceptual rainfall-runoff model as
// a deterministic per-basin time-stepping engine.
//
// # Reading Guide
//
// Start with these three files to understand the recurrence:
//   - generation.go: three-layer evapotranspiration and runoff generation
//   - sources.go / sources5mm.go: free-water-tank source partitioning
//     (closed-form and sub-stepped variants)
//   - simulator.go: the driver that owns basin state and chains the steps
//
// # Architecture
//
// Each timestep chains generation, source partitioning and routing; every
// component consumes the previous state and returns a new one, so the
// Simulator is the sole owner of mutable state. Algorithm variants
// (SourceMethod, SourceBook, SurfaceRouter) are resolved once at
// construction and never re-dispatched inside the time loop.
//
// The time dimension is strictly sequential; the basin dimension is
// embarrassingly parallel and fans out across goroutines in Run.
//
// # Extension Points
//
// The external collaborators are small:
//   - SurfaceRouter: surface discharge routing (linear reservoir or
//     unit-hydrograph convolution)
//   - OrdinateGenerator: unit-hydrograph kernel construction from a shape
//     parameter (consumed and validated here, produced elsewhere)
package xaj
