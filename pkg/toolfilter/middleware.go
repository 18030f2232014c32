package toolfilter

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/github/selective-mcp-server/pkg/selection"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	methodToolsList = "tools/list"
	methodToolsCall = "tools/call"
)

// CodeNotFound is the JSON-RPC error code used when a Strict filter rejects
// a listing.
const CodeNotFound int64 = -32002

// Middleware returns receiving middleware that filters tools/list results
// for sel. Under Warn it also answers calls to the notice tool.
func (f *Filter) Middleware(sel *selection.Selection) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			switch method {
			case methodToolsList:
				result, err := next(ctx, method, req)
				if err != nil {
					return result, err
				}
				return f.filterListResult(sel, result)
			case methodToolsCall:
				if notice, ok := f.noticeForCall(ctx, sel, req, next); ok {
					return notice.Result(), nil
				}
			}
			return next(ctx, method, req)
		}
	}
}

func (f *Filter) filterListResult(sel *selection.Selection, result mcp.Result) (mcp.Result, error) {
	listResult, ok := result.(*mcp.ListToolsResult)
	if !ok || listResult == nil {
		return result, nil
	}

	tools, err := f.Apply(listResult.Tools, sel)
	if err != nil {
		return nil, ProtocolError(err)
	}
	listResult.Tools = tools
	return listResult, nil
}

// noticeForCall rebuilds the notice from the live tool list when req calls
// the notice tool and the selection still names unknown tools.
func (f *Filter) noticeForCall(ctx context.Context, sel *selection.Selection, req mcp.Request, next mcp.MethodHandler) (NoticeTool, bool) {
	if f.behavior != Warn || sel == nil {
		return NoticeTool{}, false
	}
	params, ok := req.GetParams().(*mcp.CallToolParamsRaw)
	if !ok || params == nil || params.Name != NoticeToolName {
		return NoticeTool{}, false
	}
	session, _ := req.GetSession().(*mcp.ServerSession)

	result, err := next(ctx, methodToolsList, &mcp.ListToolsRequest{
		Session: session,
		Params:  &mcp.ListToolsParams{},
	})
	if err != nil {
		f.logger.Debug("failed to list tools for selection notice", "error", err)
		return NoticeTool{}, false
	}
	listResult, ok := result.(*mcp.ListToolsResult)
	if !ok || listResult == nil {
		return NoticeTool{}, false
	}

	invalid, available := f.reconcile(listResult.Tools, sel)
	if len(invalid) == 0 {
		return NoticeTool{}, false
	}
	return NewNoticeTool(invalid, available), true
}

// ProtocolError converts an UnknownToolError into a JSON-RPC not found error
// carrying both name lists. Other errors are returned unchanged.
func ProtocolError(err error) error {
	var unknown *UnknownToolError
	if !errors.As(err, &unknown) {
		return err
	}
	data, _ := json.Marshal(map[string][]string{
		"invalid":   unknown.Invalid,
		"available": unknown.Available,
	})
	return &jsonrpc.Error{
		Code:    CodeNotFound,
		Message: unknown.Error(),
		Data:    data,
	}
}
