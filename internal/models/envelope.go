package models

import (
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const StatusSuccess = "success"

// Envelope is the body shape returned by every backend endpoint.
type Envelope struct {
	Status  string              `json:"status"`
	Data    jsoniter.RawMessage `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
}

// Document is an opaque backend record (event, hospital, staff member, ...).
type Document map[string]any

// ID returns the document's "id" field rendered as a string.
func (d Document) ID() (string, bool) {
	raw, ok := d["id"]
	if !ok || raw == nil {
		return "", false
	}

	switch v := raw.(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return fmt.Sprint(v), true
	}
}

// Field returns a top-level field rendered as a string, or "" when missing.
func (d Document) Field(name string) string {
	raw, ok := d[name]
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	if f, ok := raw.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(raw)
}

func DecodeDocument(payload []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
