// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the Quill text tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quillworks/quill/internal/processor"
	"github.com/quillworks/quill/internal/template"
)

// Server wraps the MCP server with Quill tools.
type Server struct {
	mcp      *server.MCPServer
	svc      *processor.Service
	registry *template.Registry
}

// New creates a new MCP server with all Quill tools registered.
func New(svc *processor.Service, registry *template.Registry) *Server {
	s := &Server{svc: svc, registry: registry}

	s.mcp = server.NewMCPServer(
		"Quill",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("autocorrect_text",
		mcp.WithDescription("Apply the autocorrect heuristic to text. Style is 'formal' or 'casual' (default formal)."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to correct")),
		mcp.WithString("style", mcp.Description("Correction style: formal or casual")),
	), s.autocorrectText)

	s.mcp.AddTool(mcp.NewTool("summarize_text",
		mcp.WithDescription("Truncate text to its first 30 words."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to summarize")),
	), s.summarizeText)

	s.mcp.AddTool(mcp.NewTool("analyze_text",
		mcp.WithDescription("Compute word, sentence, and character statistics for text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to analyze")),
	), s.analyzeText)

	s.mcp.AddTool(mcp.NewTool("fill_template",
		mcp.WithDescription("Fill a registered template's placeholders with the supplied variables. "+
			"Missing variables resolve to bracketed markers. Use list_templates to see what is available."),
		mcp.WithString("template", mcp.Description("Template id (empty for the default template)")),
		mcp.WithObject("variables", mcp.Description("Variable name to replacement value mapping")),
	), s.fillTemplate)

	s.mcp.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List all registered templates with their variables."),
	), s.listTemplates)

	// Resource: template catalog.
	s.mcp.AddResource(
		mcp.NewResource("quill://templates", "Template Catalog",
			mcp.WithResourceDescription("All registered templates with bodies and declared variables."),
			mcp.WithMIMEType("application/json"),
		),
		s.readTemplatesResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) autocorrectText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	style := ""
	if v, sErr := req.RequireString("style"); sErr == nil {
		style = v
	}

	env, err := s.svc.Process(ctx, processor.Request{
		Action: processor.ActionAutocorrect,
		Text:   text,
		Style:  style,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(env.Result), nil
}

func (s *Server) summarizeText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	env, err := s.svc.Process(ctx, processor.Request{
		Action: processor.ActionSummarize,
		Text:   text,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(env.Result), nil
}

func (s *Server) analyzeText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	env, err := s.svc.Process(ctx, processor.Request{
		Action: processor.ActionAnalyze,
		Text:   text,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(env.Analysis, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) fillTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := ""
	if v, err := req.RequireString("template"); err == nil {
		name = v
	}

	variables := make(map[string]string)
	if raw, ok := req.GetArguments()["variables"].(map[string]any); ok {
		for k, v := range raw {
			if str, ok := v.(string); ok {
				variables[k] = str
			}
		}
	}

	env, err := s.svc.Process(ctx, processor.Request{
		Action:       processor.ActionAutofill,
		TemplateName: name,
		Variables:    variables,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(env.Result), nil
}

func (s *Server) listTemplates(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records := s.registry.List()
	if len(records) == 0 {
		return mcp.NewToolResultText("no templates registered"), nil
	}

	var lines []string
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("%s (%s): variables [%s]",
			rec.ID, rec.Name, strings.Join(rec.Variables, ", ")))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) readTemplatesResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	out, err := json.MarshalIndent(s.registry.List(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "quill://templates",
			MIMEType: "application/json",
			Text:     string(out),
		},
	}, nil
}
