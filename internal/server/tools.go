package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached by path, so later calls on the same path skip decoding.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Pixel-art recovery — the core tool
		{
			Name:        "pixelart_recover",
			Description: "Recover the original pixel grid of an upscaled or resampled pixel-art image: detects the native cell size and grid lines from gradient energy, then resamples each cell down to one pixel. Returns the recovered image plus the detected grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"sigma": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur sigma used before gradient energy (default 1.2)",
						"default":     1.2,
					},
					"enhance_energy": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply directional enhancement to the energy map before detection",
						"default":     false,
					},
					"enhance_directional": map[string]interface{}{
						"type":        "boolean",
						"description": "Use enhance_horizontal/enhance_vertical factors instead of the flat 1.5/1.5 default",
						"default":     false,
					},
					"enhance_horizontal": map[string]interface{}{
						"type":    "number",
						"default": 1.5,
					},
					"enhance_vertical": map[string]interface{}{
						"type":    "number",
						"default": 1.5,
					},
					"pixel_size": map[string]interface{}{
						"type":        "integer",
						"description": "Force a known pixel cell size in source pixels; 0 auto-detects within [min_s, max_s]. A positive value combined with sample_mode=direct skips detection entirely.",
						"default":     0,
					},
					"min_s": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum candidate pixel size for auto-detection (default 4)",
						"default":     4,
					},
					"max_s": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum candidate pixel size for auto-detection (default 32)",
						"default":     32,
					},
					"gap_tolerance": map[string]interface{}{
						"type":        "integer",
						"description": "Allowed slack, in pixels, between the spacing of consecutive accepted peaks and the pixel size",
						"default":     2,
					},
					"min_energy": map[string]interface{}{
						"type":        "number",
						"description": "Minimum normalized energy ratio [0,1] for a local maximum to be accepted as a grid line",
						"default":     0.15,
					},
					"smooth": map[string]interface{}{
						"type":        "integer",
						"description": "Odd box-filter width applied to the 1-D projection profiles before peak detection",
						"default":     3,
					},
					"window_size": map[string]interface{}{
						"type":        "integer",
						"description": "Odd width of a second box filter applied to each profile inside peak detection (1 skips it); the local-maximum window is the pixel size",
						"default":     5,
					},
					"sample": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to run the sampler and return recovered pixel art (false returns only detected grid lines)",
						"default":     true,
					},
					"sample_mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"direct", "center", "average", "weighted"},
						"description": "Cell-collapse rule: direct divides the image into a regular grid by pixel_size with no detection; center/average/weighted sample each detected cell",
						"default":     "average",
					},
					"sample_weight_ratio": map[string]interface{}{
						"type":        "number",
						"description": "Weighted mode's max-to-min sample weight ratio (>= 1, ignored otherwise)",
						"default":     2.0,
					},
					"upscale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer block-replication factor applied to the recovered image for display; 0 uses the detected pixel size, or 1 when sample_mode=direct",
						"default":     0,
					},
					"native_res": map[string]interface{}{
						"type":        "boolean",
						"description": "Force 1x output regardless of upscale",
						"default":     false,
					},
					"propagate_alpha": map[string]interface{}{
						"type":        "boolean",
						"description": "Average source alpha into each recovered cell instead of forcing opaque",
						"default":     true,
					},
					"include_energy_heatmap": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the quantized gradient-energy heatmap (grayscale PNG) in the response",
						"default":     false,
					},
					"include_grid_overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the source image with detected grid lines drawn on it",
						"default":     false,
					},
					"include_palette": map[string]interface{}{
						"type":        "boolean",
						"description": "Include a Lab-lightness-ordered dominant color palette of the recovered art",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into areas that need detailed examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_crop_quadrant",
			Description: "Crop a named region of the image (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region to extract",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "region"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Get color values at multiple pixel coordinates in a single call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Array of points to sample",
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Analyze an image and return the N most dominant colors (color palette extraction), ordered by frequency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to return (default 5)",
						"default":     5,
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"description": "Optional region to analyze. If omitted, analyzes entire image.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dominant_colors_lab",
			Description: "Like image_dominant_colors, but orders the returned palette by perceptual Lab lightness instead of raw frequency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to return (default 5)",
						"default":     5,
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"description": "Optional region to analyze. If omitted, analyzes entire image.",
					},
				},
				"required": []string{"path"},
			},
		},

		// Measurement Operations
		{
			Name:        "image_measure_distance",
			Description: "Measure the distance in pixels between two points.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1": map[string]interface{}{"type": "integer", "description": "First point X"},
					"y1": map[string]interface{}{"type": "integer", "description": "First point Y"},
					"x2": map[string]interface{}{"type": "integer", "description": "Second point X"},
					"y2": map[string]interface{}{"type": "integer", "description": "Second point Y"},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_grid_overlay",
			Description: "Return a version of the image with a fixed-spacing coordinate grid overlay for precise positioning reference.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between grid lines (default 50)",
						"default":     50,
					},
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to label grid intersections with coordinates",
						"default":     true,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as hex (default #FF000080 - semi-transparent red)",
						"default":     "#FF000080",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_grid_regularity",
			Description: "Report how evenly spaced a set of line positions is (mean gap, standard deviation, a 0-1 regularity score). Useful for judging confidence in a detected pixel-art grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"lines": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Sorted ascending line positions (e.g. a pixelart_recover result's all_x_lines or all_y_lines)",
					},
				},
				"required": []string{"lines"},
			},
		},
		{
			Name:        "image_edge_detect",
			Description: "Return an edge-detected version of the image, showing only structural lines. Useful for understanding diagram structure without color fills.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Low threshold for Canny edge detection (default 50)",
						"default":     50,
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "High threshold for Canny edge detection (default 150)",
						"default":     150,
					},
					"pixel_art_mode": map[string]interface{}{
						"type":        "boolean",
						"description": "Skip the Gaussian pre-blur. Set true for recovered or native pixel art, where edges are often a single pixel wide and a noise-reduction blur sized for photographs would erase them before detection runs.",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_enlarge_smooth",
			Description: "Enlarge an image (e.g. recovered pixel art) by an integer factor using smooth interpolation, for human viewing. This is distinct from the nearest-neighbor block upscale pixelart_recover itself performs.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"factor": map[string]interface{}{
						"type":        "integer",
						"description": "Integer enlargement factor (>= 1)",
						"default":     4,
					},
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"lanczos", "catmull-rom"},
						"description": "Interpolation method (default lanczos)",
						"default":     "lanczos",
					},
				},
				"required": []string{"path", "factor"},
			},
		},

		// Analysis Helpers
		{
			Name:        "image_check_alignment",
			Description: "Check if multiple points are horizontally or vertically aligned.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "integer"},
								"y": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to check for alignment",
					},
					"tolerance": map[string]interface{}{
						"type":        "integer",
						"description": "Pixel tolerance for alignment (default 5)",
						"default":     5,
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_compare_regions",
			Description: "Compare two regions of an image to determine if they contain similar content (useful for detecting repeated elements).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"region1": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
					"region2": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
				},
				"required": []string{"path", "region1", "region2"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
