// Package pixel implements the pixel buffer of a 5×5 LED dot-matrix.
//
// The buffer is compatible with Go's native [color.Color] and [image.Image] /
// [draw.Image] interfaces, so glyphs and shapes can be composited onto it with
// the standard drawing routines.
package pixel
