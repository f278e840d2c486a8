/*
Package server implements msgpack IPC for spell checking services.

The server provides a minimal interface for token checking using msgpack
serialization over stdin/stdout, so editors and other tools can keep one
long-lived process instead of rebuilding the index per invocation.

# IPC

Clients send structured messages via stdin and receive responses through
stdout. Each message carries an ID the response echoes back.

Check requests use this structure:

	{"id": "req_001", "t": "recieve", "l": 3, "d": 2}

where t is the token, l caps the suggestions and d overrides the distance
threshold; both are optional. The server responds with the verdict and the
nearby dictionary words ranked by distance:

	{"id": "req_001", "k": false, "s": [{"w": "receive", "d": 2}], "c": 1, "t": 145}

k reports exact membership, c the suggestion count, t the elapsed time in
microseconds.

Info requests report the loaded dictionary:

	{"id": "info_01", "action": "get_info"}

Error responses carry the request ID, a message and a code:

	{"id": "req_001", "e": "missing 't' parameter", "c": 400}
*/
package server

// Request is an incoming IPC message. A populated Action selects a
// management operation; otherwise the message is a check request.
type Request struct {
	ID          string `msgpack:"id"`
	Token       string `msgpack:"t,omitempty"`
	Limit       int    `msgpack:"l,omitempty"`
	MaxDistance int    `msgpack:"d,omitempty"`
	Action      string `msgpack:"action,omitempty"` // "get_info"
}

// Suggestion - one suggested word with its distance to the token
type Suggestion struct {
	Word     string `msgpack:"w"`
	Distance int    `msgpack:"d"`
}

// CheckResponse - verdict and suggestions for one token
type CheckResponse struct {
	ID          string       `msgpack:"id"`
	Known       bool         `msgpack:"k"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// InfoResponse - dictionary information
type InfoResponse struct {
	ID             string `msgpack:"id"`
	Status         string `msgpack:"status"`
	Words          int    `msgpack:"words"`
	MaxDistance    int    `msgpack:"max_distance"`
	MaxSuggestions int    `msgpack:"max_suggestions"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
