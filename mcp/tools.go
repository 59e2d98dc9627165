package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all mockscn MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	if h == nil {
		h = NewHandlerSet(nil)
	}

	s.AddTool(mcp.NewTool("detect_mock_clones",
		mcp.WithDescription("Find tests that repeat the same mock creation and stubbing, using frequent itemset mining over extracted mock facts"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Fact file or directory of *.mocks.json / *.mocks.yaml files")),
		mcp.WithNumber("min_support",
			mcp.Description("Minimum number of tests sharing a stubbing set (default: 2)")),
		mcp.WithNumber("min_loc_reduced",
			mcp.Description("Only report clones removing at least this many lines (default: 0)")),
		mcp.WithBoolean("include_no_stub",
			mcp.Description("Cluster mocks that are created but never stubbed (default: true)")),
		mcp.WithBoolean("skip_invalid",
			mcp.Description("Skip undecodable fact files instead of failing (default: false)")),
		mcp.WithString("output_mode",
			mcp.Enum("summary", "full"),
			mcp.Description("summary: flat list of clones, full: complete JSON report (default: summary)")),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum clones to return in summary mode, 0 = all (default: 0)")),
	), h.HandleDetectMockClones)

	s.AddTool(mcp.NewTool("list_mock_objects",
		mcp.WithDescription("List extracted mocks with their mocked class, namespace and creation pattern"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Fact file or directory of *.mocks.json / *.mocks.yaml files")),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum mocks to return, 0 = all (default: 0)")),
	), h.HandleListMockObjects)

	s.AddTool(mcp.NewTool("build_mock_sequences",
		mcp.WithDescription("Build the per-test mock sequences with their abstracted stubbing statements"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Fact file or directory of *.mocks.json / *.mocks.yaml files")),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum sequences to return, 0 = all (default: 0)")),
	), h.HandleBuildMockSequences)
}
