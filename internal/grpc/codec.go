package grpc

import (
	json "github.com/goccy/go-json"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// codecName is the content-subtype MusicService messages travel under
// (application/grpc+json).
const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec encodes plain Go structs with go-json and protobuf messages with
// protojson, so health and reflection calls still work under the json subtype.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}
