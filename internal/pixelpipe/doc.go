// Package pixelpipe recovers the logical pixel-art grid hidden inside a
// rasterized image and resamples the source into a low-resolution pixel-art
// canvas.
//
// The pipeline is a straight-line compute graph: grayscale conversion,
// separable Gaussian blur, Sobel gradient energy, optional directional
// enhancement, quantile-normalized 8-bit heatmap encoding, autocorrelation-based
// pixel cell size estimation, 1-D peak detection for grid lines, interior-line
// interpolation, border-line completion, and a final cell sampler with four
// modes (direct, center, average, weighted).
//
// # Determinism
//
// RunPipeline is a pure function of (RGBAImage, PipelineParams): no package
// state, no caches, no goroutines left running after return. Every stage is
// row-independent and safe to parallelize per row by a caller that needs to,
// provided per-row write order is preserved.
//
// # Coordinate system
//
// Buffers are row-major and tightly packed: element (x, y) of a W×H buffer
// lives at index y*W + x. Grid line coordinates are in source-pixel space,
// clamped to [0, width] or [0, height].
package pixelpipe
