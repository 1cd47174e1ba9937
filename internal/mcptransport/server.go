// Package mcptransport implements port.TransportAdapter over the Model
// Context Protocol, grounded on the teacher's internal/mcp package:
// mcp.NewServer(&mcp.Implementation{...}, nil) followed by
// server.AddTool(&mcp.Tool{...}, handlerFunc) and a Run over a
// mcp.StdioTransport. The teacher registers dozens of search/indexing
// tools; this adapter registers exactly one, "deep_context", that hands
// back the most recently produced report.
package mcptransport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/standardbeagle/codeintel/internal/types"
)

// Server exposes a finished types.DeepContextReport over MCP via a single
// read tool. It implements port.TransportAdapter: Send stores the report
// and the MCP tool call serves whatever was stored last.
type Server struct {
	mu     sync.RWMutex
	report *types.DeepContextReport

	server *mcp.Server
	log    *zap.Logger
}

// NewServer builds an MCP server with the deep_context tool registered.
// name/version populate mcp.Implementation; logger may be nil, in which
// case a no-op logger is used.
func NewServer(name, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{log: logger}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	s.server.AddTool(&mcp.Tool{
		Name:        "deep_context",
		Description: "Return the most recently generated deep-context analysis report as JSON.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleDeepContext)

	return s
}

// Send implements port.TransportAdapter: it stores report as the value
// the deep_context tool will serve on its next call. MCP is a pull
// transport (tool calls, not pushes), so Send never itself talks to a
// connected client.
func (s *Server) Send(ctx context.Context, report types.DeepContextReport) error {
	s.mu.Lock()
	s.report = &report
	s.mu.Unlock()

	s.log.Debug("deep context report stored for MCP tool serving",
		zap.String("analysis_id", report.AnalysisID),
		zap.Int("file_count", len(report.Files)),
	)
	return nil
}

// Run blocks serving MCP requests over stdio until ctx is cancelled or
// the transport errors out.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) handleDeepContext(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		return nil, fmt.Errorf("no deep context report available yet")
	}

	content, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal deep context report: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
	}, nil
}
