// Package orbit provides the circular-orbit model behind the animation.
//
// The package defines the bodies being animated and the mapping from a
// simulated time to a position on each body's orbit circle:
//
//   - [Body]: one orbiting entity with its scaled radius fixed at construction
//   - [ScalePolicy]: two-tier radius scaling (inner vs. outer bodies)
//   - [Model]: computes positions for a given slowdown factor
//
// # Example
//
//	earth, _ := orbit.NewBody("Earth", 1.0, 1.0, orbit.DefaultScalePolicy())
//	m := orbit.NewModel(90)
//	p, _ := m.PositionAt(earth, 22.5) // ≈ (0, 15)
//
// Positions are plain [r2.Vec] values from gonum. The model holds no
// per-frame state; every call is a pure function of its inputs.
package orbit
