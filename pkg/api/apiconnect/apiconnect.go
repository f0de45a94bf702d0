// Package apiconnect wires the chancery.v1 services to Connect. Each
// service has a handler interface, a NewXServiceHandler constructor that
// returns the path prefix and http.Handler to mount, and a typed client.
//
// Messages are plain Go structs encoded with Codec, so every handler and
// client is built with connect.WithCodec(Codec{}) ahead of the caller's
// options.
package apiconnect

import (
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PathPrefix is shared by every procedure of the API.
const PathPrefix = "/chancery.v1."

// Codec marshals messages as JSON under the Connect "json" codec name.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

func trimBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}

// routes dispatches on the exact procedure path.
type routes map[string]http.Handler

func (r routes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}
