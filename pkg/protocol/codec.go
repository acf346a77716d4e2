// pkg/protocol/codec.go
package protocol

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBinaryDecode reports an image_data or file_data field that is not valid
// base64. It is a per-request failure, never a connection failure.
var ErrBinaryDecode = errors.New("invalid base64 payload")

// Message is the decoded form of one inbound frame. Exactly one variant is
// populated, selected by Type; Raw carries the original bytes for frames
// that did not match the structured protocol.
type Message struct {
	Type       MessageType
	SenderName string

	// text
	Body string

	// image_to_ascii; ImageData is still base64
	ImageData string
	Width     int

	// docx_file; FileData is still base64
	FileData string
	FileName string

	// unrecognized
	Raw []byte
}

// DecodeFrame classifies one frame read off the wire. A frame that is not
// valid JSON, carries an unknown type, or is missing its binary payload
// field falls back to the unrecognized variant instead of an error: the
// server never rejects a malformed frame outright.
func DecodeFrame(data []byte) Message {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Message{Type: TypeUnrecognized, Raw: data}
	}

	switch f.Type {
	case TypeText:
		return Message{
			Type:       TypeText,
			SenderName: f.ClientName,
			Body:       f.Message,
		}
	case TypeImageToASCII:
		if f.ImageData == "" {
			break
		}
		return Message{
			Type:       TypeImageToASCII,
			SenderName: f.ClientName,
			ImageData:  f.ImageData,
			Width:      f.Width,
		}
	case TypeDocxFile:
		if f.FileData == "" {
			break
		}
		return Message{
			Type:       TypeDocxFile,
			SenderName: f.ClientName,
			FileData:   f.FileData,
			FileName:   f.FileName,
		}
	}

	return Message{Type: TypeUnrecognized, Raw: data}
}

// DecodeBinaryField turns a base64 text field back into raw bytes.
func DecodeBinaryField(field string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(field)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBinaryDecode, err)
	}
	return data, nil
}

// EncodeBinaryField is the inverse of DecodeBinaryField, used by clients to
// attach file contents to a request.
func EncodeBinaryField(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
