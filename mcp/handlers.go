package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dupliscan/dupliscan/domain"
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

// HandleDetectClones handles the detect_clones tool
func (h *HandlerSet) HandleDetectClones(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := domain.DefaultCloneRequest()
	req.Paths = []string{path}
	req.OutputFormat = domain.OutputFormatJSON

	if cfg := h.deps.Config(); cfg != nil {
		if cfg.Detection.Sensitivity > 0 {
			req.Sensitivity = cfg.Detection.Sensitivity
		}
		if len(cfg.Input.Extensions) > 0 {
			req.Extensions = cfg.Input.Extensions
		}
		req.Recursive = cfg.Input.Recursive
	}
	if s, ok := args["sensitivity"].(float64); ok {
		req.Sensitivity = s
	}
	if r, ok := args["recursive"].(bool); ok {
		req.Recursive = r
	}
	if rawExtensions, ok := args["extensions"].([]interface{}); ok {
		extensions := []string{}
		for _, e := range rawExtensions {
			if str, ok := e.(string); ok {
				extensions = append(extensions, str)
			}
		}
		if len(extensions) > 0 {
			req.Extensions = extensions
		}
	}

	useCase, err := h.deps.BuildCloneUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create detector: %v", err)), nil
	}

	// Detection runs on the shared worker: concurrent tool calls queue up
	// instead of racing each other.
	var response *domain.CloneResponse
	result := h.deps.RunQueue().Submit(ctx, func(ctx context.Context) error {
		var detectErr error
		response, detectErr = useCase.Detect(ctx, *req)
		return detectErr
	})
	if err := h.deps.RunQueue().Wait(ctx, result); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("clone detection failed: %v", err)), nil
	}

	records := make([]map[string]interface{}, 0, len(response.Records))
	for i := range response.Records {
		record := &response.Records[i]
		records = append(records, map[string]interface{}{
			"clone_type":     record.Type.String(),
			"file":           record.UnitID,
			"line_1":         record.LineA,
			"line_2":         record.LineB,
			"similarity":     record.SimilarityPercent(),
			"recommendation": record.Recommendation,
		})
	}

	responseData := map[string]interface{}{
		"records": records,
		"metrics": map[string]interface{}{
			"total_exact_clones":    response.Metrics.Exact,
			"total_renamed_clones":  response.Metrics.Renamed,
			"total_modified_clones": response.Metrics.Modified,
		},
		"files_analyzed": response.FilesAnalyzed,
		"lines_analyzed": response.LinesAnalyzed,
		"sensitivity":    req.Sensitivity,
	}

	jsonData, err := json.Marshal(responseData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleComputeSimilarity handles the compute_similarity tool
func (h *HandlerSet) HandleComputeSimilarity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	fragment1, ok := args["fragment1"].(string)
	if !ok {
		return mcp.NewToolResultError("fragment1 parameter is required and must be a string"), nil
	}
	fragment2, ok := args["fragment2"].(string)
	if !ok {
		return mcp.NewToolResultError("fragment2 parameter is required and must be a string"), nil
	}

	useCase, err := h.deps.BuildCloneUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create detector: %v", err)), nil
	}

	similarity, comparable := useCase.ComputeFragmentSimilarity(fragment1, fragment2)

	responseData := map[string]interface{}{
		"comparable": comparable,
	}
	if comparable {
		responseData["similarity"] = similarity
		responseData["similarity_percent"] = domain.FormatSimilarityPercent(similarity)
	} else {
		responseData["reason"] = "at least one fragment is empty after normalization"
	}

	jsonData, err := json.Marshal(responseData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandlePreviewLines handles the preview_lines tool
func (h *HandlerSet) HandlePreviewLines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	startLine, ok := args["start_line"].(float64)
	if !ok {
		return mcp.NewToolResultError("start_line parameter is required and must be a number"), nil
	}
	endLine, ok := args["end_line"].(float64)
	if !ok {
		return mcp.NewToolResultError("end_line parameter is required and must be a number"), nil
	}

	lines, err := h.deps.fileReader.ReadLineRange(path, int(startLine), int(endLine))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read lines: %v", err)), nil
	}

	responseData := map[string]interface{}{
		"path":       path,
		"start_line": int(startLine),
		"end_line":   int(endLine),
		"lines":      lines,
	}

	jsonData, err := json.Marshal(responseData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
