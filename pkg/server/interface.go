/*
Package server exposes anagram generation over HTTP and over a msgpack IPC stream.

# HTTP

The HTTP server answers a single query per request:

	GET /anagram?q=dormitory

	["dirty room", "dormitory", ...]

A missing query or one longer than max_allowed_word_length gets a
400 Bad Request, unknown paths a 404 Not Found, both as plain text.
GET /words/{word} tells whether a word is in the dictionary, GET /health
reports the dictionary size and GET /metrics serves Prometheus metrics.

# IPC

The IPC server reads msgpack values from stdin and writes one msgpack value
per request to stdout, which makes it easy to embed in editors and scripts.

	{"id": "req1", "q": "listen", "l": 10}

	{"id": "req1", "a": ["enlist", "listen", "silent"], "c": 3, "t": 145}

The action field selects other operations:

	{"id": "i1", "action": "info"}
	{"id": "w1", "action": "lookup", "w": "silent"}

Errors come back as {"id": ..., "e": message, "c": code} with HTTP-like codes.
*/
package server

// IPC actions
const (
	ActionAnagram = "anagram"
	ActionInfo    = "info"
	ActionLookup  = "lookup"
)

// Request is every IPC request; Action defaults to ActionAnagram
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Query  string `msgpack:"q,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Word   string `msgpack:"w,omitempty"`
}

// AnagramResponse carries the phrases of one query
type AnagramResponse struct {
	ID        string   `msgpack:"id"`
	Phrases   []string `msgpack:"a"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
	Cached    bool     `msgpack:"h,omitempty"`
}

// InfoResponse describes the loaded dictionary
type InfoResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Info   map[string]int `msgpack:"info"`
}

// LookupResponse answers a dictionary membership request
type LookupResponse struct {
	ID    string `msgpack:"id"`
	Word  string `msgpack:"w"`
	Known bool   `msgpack:"k"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// WordResponse is the JSON body of GET /words/{word}
type WordResponse struct {
	Word  string `json:"word"`
	Known bool   `json:"known"`
}

// HealthResponse is the JSON body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Words  int    `json:"words"`
}
