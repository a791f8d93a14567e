package guard

import (
	"encoding/json"
	"fmt"
	"io"
)

// HookResponse is written to stdout when an operation is denied
type HookResponse struct {
	HookSpecificOutput HookSpecificOutput `json:"hookSpecificOutput"`
}

// HookSpecificOutput carries the permission decision
type HookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason"`
}

// DecodeRequest reads one hook request
func DecodeRequest(r io.Reader) (HookRequest, error) {
	var req HookRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return HookRequest{}, fmt.Errorf("failed to decode hook request: %w", err)
	}
	return req, nil
}

// WriteDecision writes the response for a denied request. Allowed requests produce no output.
func WriteDecision(w io.Writer, req HookRequest, decision Decision) error {
	if decision.Allow {
		return nil
	}

	event := req.HookEventName
	if event == "" {
		event = "PreToolUse"
	}
	resp := HookResponse{
		HookSpecificOutput: HookSpecificOutput{
			HookEventName:            event,
			PermissionDecision:       "deny",
			PermissionDecisionReason: decision.Reason,
		},
	}

	enc := json.NewEncoder(w)
	return enc.Encode(resp)
}
