// pkg/protocol/messages.go
package protocol

import "encoding/json"

type MessageType string

const (
	TypeText          MessageType = "text"
	TypeImageToASCII  MessageType = "image_to_ascii"
	TypeDocxFile      MessageType = "docx_file"
	TypeASCIIResponse MessageType = "ascii_response"
	TypeDocxResponse  MessageType = "docx_response"

	// TypeUnrecognized never appears on the wire; it marks inbound frames
	// that did not parse as the structured protocol and must be echoed back
	// to the sender verbatim.
	TypeUnrecognized MessageType = "unrecognized"
)

// Frame is the flat JSON object exchanged on the wire. Requests and
// responses share the schema; unused fields are omitted.
type Frame struct {
	Type       MessageType `json:"type"`
	Message    string      `json:"message,omitempty"`
	ClientName string      `json:"client_name,omitempty"`
	ImageData  string      `json:"image_data,omitempty"`
	Width      int         `json:"width,omitempty"`
	FileData   string      `json:"file_data,omitempty"`
	FileName   string      `json:"file_name,omitempty"`
	Data       string      `json:"data,omitempty"`
}

// Encode serializes the frame for a single socket write.
func (f Frame) Encode() ([]byte, error) {
	return json.Marshal(f)
}

func NewTextMessage(message string) Frame {
	return Frame{
		Type:    TypeText,
		Message: message,
	}
}

func NewASCIIResponse(art string) Frame {
	return Frame{
		Type: TypeASCIIResponse,
		Data: art,
	}
}

func NewDocxResponse(status string) Frame {
	return Frame{
		Type:    TypeDocxResponse,
		Message: status,
	}
}

func NewTextRequest(message, clientName string) Frame {
	return Frame{
		Type:       TypeText,
		Message:    message,
		ClientName: clientName,
	}
}

func NewImageRequest(imageData string, width int, clientName string) Frame {
	return Frame{
		Type:       TypeImageToASCII,
		ImageData:  imageData,
		Width:      width,
		ClientName: clientName,
	}
}

func NewDocxRequest(fileData, fileName, clientName string) Frame {
	return Frame{
		Type:       TypeDocxFile,
		FileData:   fileData,
		FileName:   fileName,
		ClientName: clientName,
	}
}
