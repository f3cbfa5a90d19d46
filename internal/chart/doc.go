// Package chart converts a decoded raster image into a knitting chart:
// a grid of stitch cells, each carrying one color taken verbatim from the
// source image, partitioned into contiguous same-color blocks for intarsia
// bobbin planning.
//
// The pipeline is pure and deterministic. Geometry maps the cast-on count
// and gauge ratio onto the source pixels, the sampler picks the most
// frequent exact pixel color per cell, the grid builder assembles rows
// (optionally collapsing color changes onto right-side rows for garter
// fabric), and the region finder flood-fills 4-connected blocks.
//
// # Coordinate System
//
// Grid coordinates are (row, col), 0-based, row 0 at the top, matching the
// source image orientation. Pixel coordinates are 0-based with origin at
// the top-left.
//
// # Color Guarantee
//
// No step blends or averages pixels: every color in the finished grid
// appears at least once in the source image. This is what distinguishes
// the sampler from ordinary downscaling.
package chart
