package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// importProperties returns the schema properties shared by every tool that
// runs an import.
func importProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"step": map[string]interface{}{
			"type":        "integer",
			"description": "Pixels between samples when auto_safety is off. Default 1",
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Object size relative to one editor tile. Default 0.1",
			"default":     0.1,
		},
		"tolerance": map[string]interface{}{
			"type":        "integer",
			"description": "Largest per-channel color difference merged into one object. Default 5",
			"default":     5,
		},
		"auto_safety": map[string]interface{}{
			"type":        "boolean",
			"description": "Pick the step automatically to keep the object count bounded. Default true",
			"default":     true,
		},
		"merge": map[string]interface{}{
			"type":        "boolean",
			"description": "Merge neighbouring pixels of similar color into stretched objects. Default true",
			"default":     true,
		},
		"region": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"description": "Optional part of the image to import (x2,y2 exclusive)",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	toObjects := importProperties()
	toObjects["origin_x"] = map[string]interface{}{
		"type":        "number",
		"description": "Scene X of the image center. Default 0",
	}
	toObjects["origin_y"] = map[string]interface{}{
		"type":        "number",
		"description": "Scene Y of the image center. Default 0",
	}
	toObjects["object_id"] = map[string]interface{}{
		"type":        "integer",
		"description": "Editor object type to place. Default 211 (plain square)",
		"default":     211,
	}
	toObjects["compress"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Also return the object string gzip-compressed and base64 encoded",
	}

	preview := importProperties()
	preview["cell_pixels"] = map[string]interface{}{
		"type":        "integer",
		"description": "Preview pixels per grid cell, at most 64 and reduced to keep each side within 4096. Default 8",
		"default":     8,
	}
	preview["outline_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Hex color (#RRGGBB or #RRGGBBAA) for block outlines. Omit for no outlines",
	}

	return []Tool{
		{
			Name:        "image_load",
			Description: "Read an image's header and return its dimensions, format and file size.",
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
			Description: "Return only the width and height of an image.",
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
			Name:        "image_import_estimate",
			Description: "Predict the sampling step and approximate object count for an import without decoding pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"step": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between samples when auto_safety is off",
					},
					"auto_safety": map[string]interface{}{
						"type":        "boolean",
						"description": "Pick the step automatically. Default true",
						"default":     true,
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"description": "Optional part of the image to estimate (x2,y2 exclusive)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_to_objects",
			Description: "Convert an image into level editor objects: merged rectangles of similar color, each carrying an absolute HSV color override. Returns the object string for bulk insertion.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": toObjects,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_import_preview",
			Description: "Render the blocks an import would place as a base64 PNG, one flat color per block.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": preview,
				"required":   []string{"path"},
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
