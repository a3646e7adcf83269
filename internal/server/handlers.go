package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ironsheep/image-blocks-mcp/internal/blocks"
	"github.com/ironsheep/image-blocks-mcp/internal/config"
	"github.com/ironsheep/image-blocks-mcp/internal/imaging"
	"github.com/ironsheep/image-blocks-mcp/internal/importer"
	"github.com/ironsheep/image-blocks-mcp/internal/objstring"
)

// ErrBusy is returned by import tools while another import is running.
var ErrBusy = errors.New("an import is already running")

// defaultCellPixels is the preview size of one grid cell.
const defaultCellPixels = 8

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_to_objects").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Import
	case "image_import_estimate":
		return s.handleImageImportEstimate(args)
	case "image_to_objects":
		return s.handleImageToObjects(args)
	case "image_import_preview":
		return s.handleImageImportPreview(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.cache.Load(a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return map[string]int{"width": info.Width, "height": info.Height}, nil
}

// === Import Handlers ===

type importEstimateArgs struct {
	Path       string          `json:"path"`
	Step       int             `json:"step"`
	AutoSafety *bool           `json:"auto_safety"`
	Region     *imaging.Region `json:"region"`
}

func (s *Server) handleImageImportEstimate(args json.RawMessage) (interface{}, error) {
	var a importEstimateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	auto := config.DefaultAutoSafety
	if a.AutoSafety != nil {
		auto = *a.AutoSafety
	}
	width, height := info.Width, info.Height
	if a.Region != nil {
		// Same rule as the import: an invalid region means the whole image.
		if err := a.Region.Validate(width, height); err != nil {
			log.Printf("Ignoring estimate region: %v", err)
		} else {
			width, height = a.Region.Size()
		}
	}
	return blocks.EstimateObjects(width, height, a.Step, auto), nil
}

// importArgs holds the settings shared by every tool that runs an import.
// Pointer fields distinguish "absent" from a zero value.
type importArgs struct {
	Path       string          `json:"path"`
	Step       int             `json:"step"`
	Scale      *float64        `json:"scale"`
	Tolerance  *int            `json:"tolerance"`
	AutoSafety *bool           `json:"auto_safety"`
	Merge      *bool           `json:"merge"`
	Region     *imaging.Region `json:"region"`
}

func (a importArgs) settings() config.Settings {
	st := config.Default()
	st.Step = a.Step
	if a.Scale != nil {
		st.VisualScale = *a.Scale
	}
	if a.Tolerance != nil {
		st.Tolerance = *a.Tolerance
	}
	if a.AutoSafety != nil {
		st.AutoSafety = *a.AutoSafety
	}
	if a.Merge != nil {
		st.Merge = *a.Merge
	}
	return st.Validate()
}

func (a importArgs) request() importer.Request {
	return importer.Request{
		Path:     a.Path,
		Settings: a.settings(),
		Region:   a.Region,
	}
}

type imageToObjectsArgs struct {
	importArgs
	OriginX  float64 `json:"origin_x"`
	OriginY  float64 `json:"origin_y"`
	ObjectID int     `json:"object_id"`
	Compress bool    `json:"compress"`
}

// ImportResult is the image_to_objects response.
type ImportResult struct {
	Count       int     `json:"count"`
	Step        int     `json:"step"`
	GridWidth   int     `json:"grid_width"`
	GridHeight  int     `json:"grid_height"`
	OpaqueCells int     `json:"opaque_cells"`
	MergeRatio  float64 `json:"merge_ratio"`
	Message     string  `json:"message"`
	Objects     string  `json:"objects"`
	LevelString string  `json:"level_string,omitempty"`
}

func (s *Server) handleImageToObjects(args json.RawMessage) (interface{}, error) {
	var a imageToObjectsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	req := a.request()
	req.Origin = blocks.Point{X: a.OriginX, Y: a.OriginY}
	req.ObjectID = a.ObjectID

	r, err := s.runImport(req)
	if err != nil {
		return nil, err
	}

	out := &ImportResult{
		Count:       r.Count(),
		Step:        r.Plan.Step,
		GridWidth:   r.Plan.GridWidth,
		GridHeight:  r.Plan.GridHeight,
		OpaqueCells: r.OpaqueCells,
		MergeRatio:  r.MergeRatio(),
		Message:     r.Message(),
		Objects:     r.Objects,
	}
	if a.Compress {
		level, err := objstring.CompressLevelString(r.Objects)
		if err != nil {
			return nil, fmt.Errorf("failed to compress object string: %w", err)
		}
		out.LevelString = level
	}
	return out, nil
}

// runImport runs req through the server's session and waits for it.
// It returns ErrBusy when another import holds the session.
func (s *Server) runImport(req importer.Request) (importer.Result, error) {
	done, ok := s.session.Start(req)
	if !ok {
		return importer.Result{}, ErrBusy
	}
	r := <-done
	if !r.OK() {
		return r, r.Err
	}
	return r, nil
}

type imageImportPreviewArgs struct {
	importArgs
	CellPixels   int    `json:"cell_pixels"`
	OutlineColor string `json:"outline_color"`
}

func (s *Server) handleImageImportPreview(args json.RawMessage) (interface{}, error) {
	var a imageImportPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.CellPixels <= 0 {
		a.CellPixels = defaultCellPixels
	}

	r, err := s.runImport(a.request())
	if err != nil {
		return nil, err
	}

	fills := make([]imaging.Fill, len(r.Blocks))
	for i, b := range r.Blocks {
		fills[i] = imaging.Fill{X: b.GX, Y: b.GY, Width: b.SpanX, Height: b.SpanY, Color: b.Color}
	}
	return imaging.RenderPreview(r.Plan.GridWidth, r.Plan.GridHeight, fills, a.CellPixels, a.OutlineColor)
}
