package batch

import (
	"context"
	"encoding/json"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/strophe/convert"
	"github.com/hazyhaar/strophe/kit"
)

// RegisterMCP registers the segmentation tools on an MCP server.
func (p *Processor) RegisterMCP(srv *mcp.Server) {
	p.registerSplitTool(srv)
	p.registerDetectTool(srv)
	p.registerFormatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func mcpCtx(ctx context.Context) context.Context {
	return kit.WithTransport(ctx, "mcp")
}

// --- split ---

type splitReq struct {
	Path string `json:"path"`
}

type splitPoem struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
}

func (p *Processor) registerSplitTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "strophe_split",
		Description: "Split a document file (docx, odt, pdf, md, txt, html) into individual poems.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "File path to split"},
		}, []string{"path"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*splitReq)
		data, err := os.ReadFile(r.Path)
		if err != nil {
			return nil, err
		}
		spans, err := p.split(ctx, Document{Name: r.Path, Data: data})
		if err != nil {
			return nil, err
		}
		poems := make([]splitPoem, len(spans))
		for i, span := range spans {
			rec := p.factory.Make(span, r.Path)
			poems[i] = splitPoem{Title: rec.Title, Content: rec.Content, WordCount: rec.WordCount}
		}
		return map[string]any{"count": len(poems), "poems": poems}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r splitReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r, EnrichCtx: mcpCtx}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- detect ---

type detectReq struct {
	Path string `json:"path"`
}

func (p *Processor) registerDetectTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "strophe_detect",
		Description: "Detect the format of a document file from its extension.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "File path to detect"},
		}, []string{"path"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*detectReq)
		format, err := p.conv.Detect(r.Path)
		if err != nil {
			return nil, err
		}
		return map[string]any{"format": string(format)}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r detectReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r, EnrichCtx: mcpCtx}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- formats ---

func (p *Processor) registerFormatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "strophe_formats",
		Description: "List all supported document formats.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		return map[string]any{"formats": convert.SupportedFormats()}, nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil, EnrichCtx: mcpCtx}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
