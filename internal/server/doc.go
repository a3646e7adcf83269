// Package server implements the MCP (Model Context Protocol) server that turns
// images into level editor objects.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Read image header (dimensions, format, size)
//   - image_dimensions: Width and height only
//   - image_import_estimate: Predict sampling step and object count
//   - image_to_objects: Convert an image into an editor object string
//   - image_import_preview: Render the merged blocks as a PNG
//
// # Imports
//
// Conversions run through one importer session per server, so at most one
// import runs at a time. Requests are handled sequentially, which means a
// tool call waits for its own import to finish before the next request is
// read.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
