// Package decompose projects two line-of-sight displacement rasters, one
// from an ascending pass and one from a descending pass, onto vertical and
// horizontal components.
//
// The pipeline is a pure-function chain: Overlap finds the common geographic
// footprint, WindowFor/Align extract matching-shape LOS samples from each
// input, Solve applies the per-pixel 2x2 least-squares projection, and
// Assemble reshapes the solved vectors into output rasters.
//
// Two deliberate simplifications are carried from the underlying method and
// must not be "fixed": incidence and heading are single representative
// scalars per acquisition (not per-pixel fields), so one design matrix and
// one pseudo-inverse serve every pixel; and only two viewing geometries are
// supported, so horizontal motion perpendicular to the chosen azimuth is
// assumed zero rather than resolved.
package decompose
