// Package jsonx is the JSON codec shared by the module. It is a thin wrapper
// over json-iterator configured to behave like encoding/json.
package jsonx

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal encodes v as JSON
func Marshal(v any) ([]byte, error) {
	return codec.Marshal(v)
}

// MarshalIndent encodes v as indented JSON
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return codec.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes JSON data into v
func Unmarshal(data []byte, v any) error {
	return codec.Unmarshal(data, v)
}

// NewDecoder returns a streaming decoder reading from r
func NewDecoder(r io.Reader) *jsoniter.Decoder {
	return codec.NewDecoder(r)
}

// NewEncoder returns a streaming encoder writing to w
func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return codec.NewEncoder(w)
}
