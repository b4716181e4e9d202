package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/tejaskumbhar288/email-mcp-server/pkgs/tools"
)

// toolRequest is one line of input on the serve loop.
type toolRequest struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments"`
}

// toolResponse is one line of output. Exactly one of Text or Error is set.
type toolResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// serve reads line-delimited JSON tool calls from stdin and writes one
// JSON response line per call to stdout. Each call runs as its own
// synchronous unit of work with its own mail session.
func serve(h *tools.Handler, logger *slog.Logger) error {
	logger.Info("serving tool calls on stdin/stdout", "tools", tools.Names())

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req toolRequest
		if err := json.Unmarshal(line, &req); err != nil {
			if err := encoder.Encode(toolResponse{Error: fmt.Sprintf("invalid request: %v", err)}); err != nil {
				return err
			}
			continue
		}

		logger.Debug("tool call", "tool", req.Tool)

		resp := toolResponse{}
		text, err := h.Dispatch(req.Tool, req.Arguments)
		if err != nil {
			logger.Warn("tool call failed", "tool", req.Tool, "error", err)
			resp.Error = err.Error()
		} else {
			resp.Text = text
		}

		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	logger.Info("stdin closed, shutting down")
	return nil
}
