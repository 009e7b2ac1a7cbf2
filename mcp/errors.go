package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

type ErrorCode string

const (
	ErrNotFound        ErrorCode = "not_found"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrInternal        ErrorCode = "internal"
)

// ToolError is the JSON body of a result with isError set.
type ToolError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e ToolError) ToResult() *mcp.CallToolResult {
	data, _ := json.Marshal(e)
	return mcp.NewToolResultError(string(data))
}

// CaseStudyNotFound reports a work_get slug with no case study behind it.
func CaseStudyNotFound(slug string) *mcp.CallToolResult {
	return ToolError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("no case study with slug %q", slug),
		Details: map[string]any{"slug": slug},
	}.ToResult()
}

// InvalidArgument names the argument and echoes the rejected value.
func InvalidArgument(arg string, value any, reason string) *mcp.CallToolResult {
	details := map[string]any{"argument": arg}
	if value != nil {
		details["value"] = value
	}
	return ToolError{
		Code:    ErrInvalidArgument,
		Message: arg + ": " + reason,
		Details: details,
	}.ToResult()
}

func InternalError(tool string, err error) *mcp.CallToolResult {
	return ToolError{
		Code:    ErrInternal,
		Message: err.Error(),
		Details: map[string]any{"tool": tool},
	}.ToResult()
}
