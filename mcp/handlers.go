package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/mockscn/domain"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleDetectMockClones handles the detect_mock_clones tool
func (h *HandlerSet) HandleDetectMockClones(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, path, errResult := parsePathArguments(request)
	if errResult != nil {
		return errResult, nil
	}

	req, err := h.deps.BaseRequest(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load configuration: %v", err)), nil
	}
	req.Paths = []string{path}
	if ms, ok := args["min_support"].(float64); ok {
		req.MinSupport = int(ms)
	}
	if ml, ok := args["min_loc_reduced"].(float64); ok {
		req.MinLocReduced = int(ml)
	}
	if ns, ok := args["include_no_stub"].(bool); ok {
		req.IncludeNoStub = domain.BoolPtr(ns)
	}
	if si, ok := args["skip_invalid"].(bool); ok {
		req.SkipInvalid = domain.BoolPtr(si)
	}

	var buf bytes.Buffer
	req.OutputFormat = domain.OutputFormatJSON
	req.OutputWriter = &buf
	req.OutputPath = ""
	req.ConfigPath = ""

	useCase, err := h.deps.BuildMockCloneUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create detector: %v", err)), nil
	}

	result, err := useCase.Execute(ctx, *req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("mock clone detection failed: %v", err)), nil
	}

	if outputMode(args) == "full" {
		return mcp.NewToolResultText(buf.String()), nil
	}
	return marshalResult(formatMockClonesSummary(result, maxResults(args)))
}

// HandleListMockObjects handles the list_mock_objects tool
func (h *HandlerSet) HandleListMockObjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleMockInfo(ctx, request, domain.MockInfoViewMocks)
}

// HandleBuildMockSequences handles the build_mock_sequences tool
func (h *HandlerSet) HandleBuildMockSequences(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleMockInfo(ctx, request, domain.MockInfoViewSequences)
}

func (h *HandlerSet) handleMockInfo(ctx context.Context, request mcp.CallToolRequest, view domain.MockInfoView) (*mcp.CallToolResult, error) {
	args, path, errResult := parsePathArguments(request)
	if errResult != nil {
		return errResult, nil
	}

	req, err := h.deps.BaseRequest(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load configuration: %v", err)), nil
	}
	req.Paths = []string{path}
	req.OutputWriter = nil
	req.OutputPath = ""

	useCase, err := h.deps.BuildMockInfoUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create mock lister: %v", err)), nil
	}

	result, err := useCase.Execute(ctx, *req, view)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing %s failed: %v", view, err)), nil
	}

	return marshalResult(formatMockList(result, maxResults(args)))
}

// parsePathArguments extracts the argument map and the required, existing path
func parsePathArguments(request mcp.CallToolRequest) (map[string]interface{}, string, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, "", mcp.NewToolResultError("invalid arguments format")
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, "", mcp.NewToolResultError("path parameter is required and must be a string")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, "", mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path))
	}
	return args, path, nil
}

func outputMode(args map[string]interface{}) string {
	if om, ok := args["output_mode"].(string); ok {
		return om
	}
	return "summary"
}

// maxResults returns the max_results argument, 0 = unlimited
func maxResults(args map[string]interface{}) int {
	if mr, ok := args["max_results"].(float64); ok && mr > 0 {
		return int(mr)
	}
	return 0
}

func marshalResult(data interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// formatMockClonesSummary flattens clone groups into a list of refactoring candidates
func formatMockClonesSummary(result *domain.MockCloneResponse, maxResults int) map[string]interface{} {
	type Test struct {
		File   string `json:"file"`
		Class  string `json:"class"`
		Method string `json:"method"`
		Mock   string `json:"mock"`
	}
	type Clone struct {
		ID               string   `json:"id"`
		MockedClass      string   `json:"mocked_class"`
		Kind             string   `json:"kind"`
		SharedStatements []string `json:"shared_statements"`
		LocReduced       int      `json:"loc_reduced"`
		MockObjects      int      `json:"mock_objects"`
		Tests            []Test   `json:"tests"`
	}

	clones := []Clone{}
	for _, group := range result.Clones {
		for _, inst := range group.Instances {
			if maxResults > 0 && len(clones) >= maxResults {
				break
			}
			clone := Clone{
				ID:               inst.ID,
				MockedClass:      inst.MockedClass,
				Kind:             string(inst.Kind),
				SharedStatements: inst.SharedStatements,
				LocReduced:       inst.LocReduced,
				MockObjects:      inst.MockObjectCount,
				Tests:            []Test{},
			}
			for _, seq := range inst.Sequences {
				clone.Tests = append(clone.Tests, Test{
					File:   seq.FilePath,
					Class:  seq.ClassName,
					Method: seq.TestMethodName,
					Mock:   seq.VariableName,
				})
			}
			clones = append(clones, clone)
		}
	}

	return map[string]interface{}{
		"clones": clones,
		"summary": map[string]interface{}{
			"fact_files":        result.Summary.TotalFactFiles,
			"mocks":             result.Summary.TotalMocks,
			"sequences":         result.Summary.TotalSequences,
			"total_clones":      result.Summary.TotalClones,
			"mined_clones":      result.Summary.MinedClones,
			"no_stub_clones":    result.Summary.NoStubClones,
			"total_loc_reduced": result.Summary.TotalLocReduced,
		},
		"warnings": result.Warnings,
	}
}

// formatMockList reports either mocks with their creation pattern or per-test sequences
func formatMockList(result *domain.MockInfoResponse, maxResults int) map[string]interface{} {
	items := []map[string]interface{}{}

	if result.View == domain.MockInfoViewSequences {
		for _, seq := range result.Sequences {
			if maxResults > 0 && len(items) >= maxResults {
				break
			}
			items = append(items, map[string]interface{}{
				"mock":          seq.VariableName,
				"mocked_class":  seq.MockedClass,
				"file":          seq.FilePath,
				"test_method":   seq.TestMethodName,
				"stubbings":     seq.AbstractedStatements.Values(),
				"test_lines":    seq.TestLines.Len(),
				"overlap_lines": seq.OverlapLines,
			})
		}
	} else {
		for _, mock := range result.Mocks {
			if maxResults > 0 && len(items) >= maxResults {
				break
			}
			items = append(items, map[string]interface{}{
				"mock":         mock.VariableName,
				"mocked_class": mock.MockedClass,
				"namespace":    mock.Namespace,
				"file":         mock.FilePath,
				"pattern":      mock.MockPattern,
				"reusable":     mock.IsReusable,
			})
		}
	}

	return map[string]interface{}{
		"view":  string(result.View),
		"items": items,
		"summary": map[string]interface{}{
			"fact_files":      result.Summary.TotalFactFiles,
			"mocks":           result.Summary.TotalMocks,
			"sequences":       result.Summary.TotalSequences,
			"groups":          result.Summary.TotalGroups,
			"analyzed_groups": result.Summary.AnalyzedGroups,
		},
		"warnings": result.Warnings,
	}
}
