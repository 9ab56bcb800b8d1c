// Package model provides the integer geometry shared by the reconstruction
// stages.
//
// # Ranges and boxes
//
// A [Range] is a closed integer interval; float inputs are truncated
// toward zero. A [BBox] holds one range per [Axis] and either axis may be
// unset:
//
//	box := model.MustBBox([]float64{56, 999}, []float64{45, 780})
//	inner, err := model.NewBBoxFromPoints(model.Point{X: 100, Y: 88}, model.Point{X: 130, Y: 100})
//
// # Operations
//
// Boxes support intersection, union, containment tests and margin changes:
//
//   - Intersect returns nil when the boxes are disjoint on either axis
//   - Union grows to cover both boxes
//   - ContainsGeomObject accepts a [Point] or a *BBox
//   - ExpandByMargins returns a grown copy; ChangeRange edits in place
//
// Y grows downward, so Y0 is the top edge of a box.
package model
