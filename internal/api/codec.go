// Package api defines the splitledger RPC surface: request and response
// messages plus Connect handler and client constructors.
//
// Messages are plain Go structs carried by a JSON codec, so any Connect or
// HTTP/JSON client can call the services with Content-Type application/json.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec marshals messages as JSON. Its name replaces Connect's default
// protojson codec for the "json" content subtype.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }
