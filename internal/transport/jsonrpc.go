package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParse          = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
)

var (
	ErrParse          = errors.New("parse error")
	ErrInvalidRequest = errors.New("invalid request")
)

// unknownMethodCode is the API error code the RPC handler uses for a method
// it does not serve.
const unknownMethodCode = "UNKNOWN_METHOD"

// Request is a single JSON-RPC 2.0 call. Batches are not accepted.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id,omitempty"`
}

// Error is the JSON-RPC error object. Data carries the dashboard API error
// (code, message, recovery hint) when one is available.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// codedError is satisfied by MCP API errors.
type codedError interface {
	error
	CodeValue() string
	MessageValue() string
}

// ParseRequest decodes one call. Malformed JSON wraps ErrParse; a payload
// that is not a 2.0 call with a method wraps ErrInvalidRequest.
func ParseRequest(body io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if req.JSONRPC != "2.0" {
		return Request{}, fmt.Errorf("%w: jsonrpc must be \"2.0\"", ErrInvalidRequest)
	}
	if req.Method == "" {
		return Request{}, fmt.Errorf("%w: method is required", ErrInvalidRequest)
	}
	return req, nil
}

// requestError converts a ParseRequest failure into an error object.
func requestError(err error) *Error {
	if errors.Is(err, ErrParse) {
		return &Error{Code: CodeParse, Message: "parse error"}
	}
	return &Error{Code: CodeInvalidRequest, Message: err.Error()}
}

// callError converts a handler failure into an error object. Dashboard
// errors are caller mistakes; anything else is internal and its text is
// not echoed back.
func callError(err error) (*Error, bool) {
	var coded codedError
	if !errors.As(err, &coded) {
		return &Error{Code: CodeInternal, Message: "internal error"}, false
	}
	code := CodeInvalidParams
	if coded.CodeValue() == unknownMethodCode {
		code = CodeMethodNotFound
	}
	return &Error{Code: code, Message: coded.MessageValue(), Data: coded}, true
}

func WriteResult(w http.ResponseWriter, id any, result any) {
	writeJSONBody(w, http.StatusOK, Response{JSONRPC: "2.0", Result: result, ID: id})
}

// WriteError writes an error response. JSON-RPC errors still use 200.
func WriteError(w http.ResponseWriter, id any, rpcErr *Error) {
	writeJSONBody(w, http.StatusOK, Response{JSONRPC: "2.0", Error: rpcErr, ID: id})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSONBody(w, status, map[string]string{"error": message})
}

func writeJSONBody(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
