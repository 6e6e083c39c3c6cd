package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLoggingMiddleware logs every inbound call at debug level. Tool
// calls are logged with the tool name and whether the tool reported an
// error, so a dashboard session can be followed call by call.
func trafficLoggingMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			attrs := []any{"method", method, "session_id", sessionID(req)}
			if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
				attrs = append(attrs, "tool", call.Params.Name, "arguments", string(call.Params.Arguments))
			}

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs = append(attrs, "duration", time.Since(start))
			switch res := result.(type) {
			case *sdkmcp.CallToolResult:
				attrs = append(attrs, "tool_error", res.IsError, "result", formatPayload(res.Content))
			default:
				attrs = append(attrs, "result", formatPayload(result))
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp call", attrs...)
			return result, err
		}
	}
}

// sessionID is empty for requests that arrive without a server session.
func sessionID(req sdkmcp.Request) string {
	if req == nil {
		return ""
	}
	ss, ok := req.GetSession().(*sdkmcp.ServerSession)
	if !ok || ss == nil {
		return ""
	}
	return ss.ID()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
