// Package guard implements the pre-execution hook that keeps environment secrets
// files out of file-read and search operations.
//
// The host tool invokes the hook with a JSON request naming the operation and its
// input. Requests touching a secrets file are denied with a reason; everything
// else is allowed without output. The guard keeps no state between invocations.
package guard

import (
	"fmt"
	"strings"
)

// DefaultSecretsMarker identifies environment secrets files by substring
const DefaultSecretsMarker = ".env"

// DefaultOperations are the file-read and search operations the guard inspects
var DefaultOperations = []string{"Read", "Grep", "Glob", "NotebookRead"}

// HookRequest is the JSON payload the host tool sends before running an operation
type HookRequest struct {
	HookEventName string    `json:"hook_event_name"`
	ToolName      string    `json:"tool_name"`
	ToolInput     ToolInput `json:"tool_input"`
}

// ToolInput carries the path and pattern arguments of an operation
type ToolInput struct {
	FilePath string `json:"file_path"`
	Path     string `json:"path"`
	Pattern  string `json:"pattern"`
	Glob     string `json:"glob"`
}

// arguments returns the non-empty target arguments with their field names.
// Only Glob uses pattern as a path; for Grep it is a regex over file contents.
func (in ToolInput) arguments(operation string) [][2]string {
	candidates := [][2]string{
		{"file_path", in.FilePath},
		{"path", in.Path},
		{"glob", in.Glob},
	}
	if operation == "Glob" {
		candidates = append(candidates, [2]string{"pattern", in.Pattern})
	}

	var args [][2]string
	for _, arg := range candidates {
		if arg[1] != "" {
			args = append(args, arg)
		}
	}
	return args
}

// Decision is the outcome of evaluating one request
type Decision struct {
	Allow  bool
	Reason string
}

// Policy denies inspected operations whose arguments reference a secrets file
type Policy struct {
	markers    []string
	operations map[string]struct{}
}

// NewPolicy creates a policy for the given markers, or DefaultSecretsMarker when none are given
func NewPolicy(markers ...string) *Policy {
	if len(markers) == 0 {
		markers = []string{DefaultSecretsMarker}
	}
	ops := make(map[string]struct{}, len(DefaultOperations))
	for _, op := range DefaultOperations {
		ops[op] = struct{}{}
	}
	return &Policy{markers: markers, operations: ops}
}

// Inspects reports whether the operation is subject to the policy
func (p *Policy) Inspects(operation string) bool {
	_, ok := p.operations[operation]
	return ok
}

// Evaluate decides whether the request may run
func (p *Policy) Evaluate(req HookRequest) Decision {
	if !p.Inspects(req.ToolName) {
		return Decision{Allow: true}
	}

	for _, arg := range req.ToolInput.arguments(req.ToolName) {
		for _, marker := range p.markers {
			if strings.Contains(arg[1], marker) {
				return Decision{
					Allow: false,
					Reason: fmt.Sprintf("Access to environment secrets files is blocked: %s %s=%q references %q",
						req.ToolName, arg[0], arg[1], marker),
				}
			}
		}
	}

	return Decision{Allow: true}
}
