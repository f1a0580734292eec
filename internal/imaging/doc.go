// Package imaging is the ambient tool belt around the pixelart-recover
// pipeline: an image.Image-based layer for loading, inspecting, cropping,
// and annotating source images and the pixel art pixelpipe recovers from
// them, plus the glue (ToRGBA/FromRGBA) that bridges image.Image to
// pixelpipe's tightly-packed buffer type. All operations work with standard
// Go image.Image types and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Coordinates are inclusive for single points
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images. Operations
// on the same image should be synchronized by the caller if the image is mutable.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// Dominant-color counting is exact-match, not quantized into buckets: a
// pixel-art palette's nearby-but-distinct colors are deliberate palette
// entries, not noise to merge.
//
// # Pixel-Art-Aware Behavior
//
// A few operations change behavior specifically for pixel art, rather than
// treating every source the same as a photograph:
//   - Crop's scale step uses nearest-neighbor, not Lanczos, so zooming into
//     a crop doesn't blur the cell edges being inspected.
//   - EdgeDetect accepts a pixel_art_mode flag that skips the Gaussian
//     pre-blur, since recovered art often has single-pixel-wide edges a
//     noise-reduction blur would erase before detection runs.
//   - LoadImageInfo reports a capped unique-color count, a quick signal for
//     whether a source looks like a deliberate small palette versus a
//     photograph or an already-smoothed upscale.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - File I/O errors during image loading
//   - Encoding errors during image output
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Consider using Evict() or Clear() to manage memory for long-running processes.
package imaging
