package streamtape

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the provider's uniform response shape. Result is polymorphic:
// depending on the endpoint it carries an object, an array, a string, or a
// boolean, so it stays raw until the calling operation declares its variant.
type envelope struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	Result json.RawMessage `json:"result"`
}

// Error is a remote business failure: the outbound call completed but the
// provider's envelope status was not 200. Status falls back to 500 when the
// envelope omitted one, and Message carries the provider's msg, extended with
// the textual result content when the provider put diagnostic detail there.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("streamtape: %s (status %d)", e.Message, e.Status)
}

// ShapeError reports a provider result whose type does not match what the
// operation expects. It is never coerced into an empty or zero value: a shape
// change in the provider contract must reach the caller.
type ShapeError struct {
	Op   string
	Want string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("streamtape: %s: provider result is not %s", e.Op, e.Want)
}

func (e *envelope) err() error {
	status := e.Status
	if status == 0 {
		status = 500
	}
	message := e.Msg
	if message == "" {
		message = "provider request failed"
	}
	if detail, ok := e.textualResult(); ok && detail != "" {
		message = fmt.Sprintf("%s: %s", message, detail)
	}
	return &Error{Status: status, Message: message}
}

func (e *envelope) textualResult() (string, bool) {
	if len(e.Result) == 0 {
		return "", false
	}
	var text string
	if err := json.Unmarshal(e.Result, &text); err != nil {
		return "", false
	}
	return text, true
}

// object decodes the result as a JSON object keyed by field name, leaving the
// values raw so provider fields are relayed untouched.
func (e *envelope) object(op string) (map[string]json.RawMessage, error) {
	if !isJSONObject(e.Result) {
		return nil, &ShapeError{Op: op, Want: "an object"}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Result, &fields); err != nil {
		return nil, &ShapeError{Op: op, Want: "an object"}
	}
	return fields, nil
}

// objectInto decodes the result into a typed destination struct.
func (e *envelope) objectInto(op string, dest interface{}) error {
	if !isJSONObject(e.Result) {
		return &ShapeError{Op: op, Want: "an object"}
	}
	if err := json.Unmarshal(e.Result, dest); err != nil {
		return &ShapeError{Op: op, Want: "an object"}
	}
	return nil
}

// list decodes the result as a JSON array with raw elements.
func (e *envelope) list(op string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(e.Result)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ShapeError{Op: op, Want: "a list"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &ShapeError{Op: op, Want: "a list"}
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

// text decodes the result as a JSON string.
func (e *envelope) text(op string) (string, error) {
	var value string
	if err := json.Unmarshal(e.Result, &value); err != nil {
		return "", &ShapeError{Op: op, Want: "a string"}
	}
	return value, nil
}

// boolean coerces the result to a bool: anything other than literal true is
// false. The remote call already succeeded at the envelope level, so an
// unexpected type here means failure-to-confirm, not an error.
func (e *envelope) boolean() bool {
	var value bool
	if err := json.Unmarshal(e.Result, &value); err != nil {
		return false
	}
	return value
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
