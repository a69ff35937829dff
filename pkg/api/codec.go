// Package api defines the officeplan.v1 Connect services: request and
// response messages, procedure names, handler constructors and clients.
//
// Messages are plain Go structs carried as JSON. Empty responses use
// emptypb.Empty so they stay wire-compatible with protobuf clients.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// DeviceHeader carries the caller's device id on every request.
const DeviceHeader = "X-Device-Id"

const codecName = "json"

// Codec returns the JSON codec shared by handlers and clients.
func Codec() connect.Codec {
	return jsonCodec{}
}

type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		data = []byte("{}")
	}
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}
