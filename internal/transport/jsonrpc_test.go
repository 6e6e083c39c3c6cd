package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"sort_projects","params":{"key":"name"},"id":1}`)
	req, err := ParseRequest(body)
	require.NoError(t, err)
	require.Equal(t, "sort_projects", req.Method)
	require.Equal(t, json.RawMessage(`{"key":"name"}`), req.Params)
}

func TestParseRequest_Invalid(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
		code int
	}{
		{"malformed", `{"jsonrpc":`, ErrParse, CodeParse},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, ErrInvalidRequest, CodeInvalidRequest},
		{"wrong version", `{"jsonrpc":"1.0","method":"list_tags"}`, ErrInvalidRequest, CodeInvalidRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRequest(bytes.NewBufferString(tc.body))
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, tc.code, requestError(err).Code)
		})
	}
}

func TestCallError_HidesInternalText(t *testing.T) {
	rpcErr, known := callError(errors.New("database is locked"))
	require.False(t, known)
	require.Equal(t, CodeInternal, rpcErr.Code)
	require.NotContains(t, rpcErr.Message, "locked")
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 1, &Error{Code: CodeInvalidParams, Message: "bad params"})

	require.Equal(t, 200, rec.Code)
	var out Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.Equal(t, CodeInvalidParams, out.Error.Code)
	require.EqualValues(t, 1, out.ID)
}
