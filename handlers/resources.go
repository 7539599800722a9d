// ABOUTME: MCP resource handlers exposing workspace slices read-only
// ABOUTME: echoes://<slice> returns the slice as JSON; pipeline and finance are rollups
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "echoes://"

type ResourceHandlers struct {
	state *state.State
}

func NewResourceHandlers(st *state.State) *ResourceHandlers {
	return &ResourceHandlers{state: st}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	name, ok := strings.CutPrefix(uri, resourceScheme)
	if !ok {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	var data []byte
	var err error
	switch name {
	case "pipeline":
		data, err = json.MarshalIndent(pipelineToOutput(h.state.Pipeline()), "", "  ")
	case "finance":
		data, err = json.MarshalIndent(h.state.FinanceSummary(), "", "  ")
	default:
		var found bool
		data, found, err = h.state.SnapshotJSON(name)
		if !found {
			return nil, fmt.Errorf("unknown resource: %s", name)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

// Resources lists the fixed resources the server advertises.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	names := append([]string{"pipeline", "finance"}, h.state.SliceNames()...)
	out := make([]*mcp.Resource, len(names))
	for i, name := range names {
		out[i] = &mcp.Resource{
			URI:      resourceScheme + name,
			Name:     name,
			MIMEType: "application/json",
		}
	}
	return out
}
