// Package deviation converts blade-row flow angles into manufacturable
// metal angles.
//
// The Johnsen-Bullock correlation is evaluated as a fixed-point iteration
// from zero incidence and deviation. Flow angles enter the empirical fits as
// magnitudes in degrees; the resulting incidence and deviation take the sign
// of the inlet and outlet flow angle respectively, so a row with negative
// flow angles gets the mirror image of the positive-angle result.
//
// # Types
//
//   - [Family]: airfoil family tag (NACA65, DCA, C4)
//   - [Correlation]: per-family empirical constants
//   - [JohnsenBullock]: the iterative solver
//   - [MetalAngles]: solver output
//   - [Method]: how a blade row picks its metal angles
package deviation
