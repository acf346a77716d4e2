// internal/client/models/models.go
package models

// Events delivered from the network handler into the TUI event loop.

type IncomingText struct {
	Message string
}

type ASCIIResult struct {
	Art string
}

type DocxStatus struct {
	Message string
}

type RawResponse struct {
	Data []byte
}

type ConnectionLost struct {
	Err error
}
