package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quillworks/quill/internal/processor"
	"github.com/quillworks/quill/internal/template"
	"github.com/quillworks/quill/internal/usagelog"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	reg := template.NewRegistry(template.DefaultTemplateID)
	if errs := reg.Upsert(template.BuiltinSeed()); len(errs) != 0 {
		t.Fatalf("seed rejected: %v", errs)
	}
	svc := processor.New(reg, usagelog.NewLog(100), nil, nil)
	return New(svc, reg)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "autocorrect_text":
		result, err = srv.autocorrectText(ctx, req)
	case "summarize_text":
		result, err = srv.summarizeText(ctx, req)
	case "analyze_text":
		result, err = srv.analyzeText(ctx, req)
	case "fill_template":
		result, err = srv.fillTemplate(ctx, req)
	case "list_templates":
		result, err = srv.listTemplates(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func textContent(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return tc.Text
}

func TestAutocorrectTool(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "autocorrect_text", map[string]interface{}{
		"text": "hello world",
	})
	got := textContent(t, res)
	if got != "AI Corrected (formal): Hello world." {
		t.Errorf("result = %q", got)
	}
}

func TestAutocorrectTool_MissingText(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "autocorrect_text", map[string]interface{}{})
	if !res.IsError {
		t.Fatal("missing text should yield a tool error")
	}
}

func TestSummarizeTool(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "summarize_text", map[string]interface{}{
		"text": "short enough already",
	})
	if got := textContent(t, res); got != "short enough already" {
		t.Errorf("result = %q", got)
	}
}

func TestAnalyzeTool(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "analyze_text", map[string]interface{}{
		"text": "The quick brown fox jumps.",
	})
	got := textContent(t, res)
	if !strings.Contains(got, `"word_count": 5`) {
		t.Errorf("analysis JSON missing word count: %q", got)
	}
}

func TestFillTemplateTool(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "fill_template", map[string]interface{}{
		"template": "email_template",
		"variables": map[string]interface{}{
			"subject": "Hi",
		},
	})
	got := textContent(t, res)
	if !strings.Contains(got, "Subject: Hi") {
		t.Errorf("subject not filled: %q", got)
	}
	if !strings.Contains(got, "[RECIPIENT_HERE]") {
		t.Errorf("missing variables should use markers: %q", got)
	}
}

func TestFillTemplateTool_UnknownTemplate(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "fill_template", map[string]interface{}{
		"template": "missing",
	})
	if !res.IsError {
		t.Fatal("unknown template should yield a tool error")
	}
}

func TestListTemplatesTool(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "list_templates", nil)
	got := textContent(t, res)
	for _, id := range []string{"email_template", "meeting_notes", "blog_post"} {
		if !strings.Contains(got, id) {
			t.Errorf("listing missing %q: %q", id, got)
		}
	}
}

func TestTemplatesResource(t *testing.T) {
	srv := testServer(t)

	contents, err := srv.readTemplatesResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents len = %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected contents type %T", contents[0])
	}
	if !strings.Contains(tc.Text, "email_template") {
		t.Errorf("resource missing templates: %q", tc.Text)
	}
}
