package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Fallback messages when the backend does not explain itself
const (
	MessageGeneric     = "Erro ao processar a requisição."
	MessageUnreachable = "Não foi possível conectar ao servidor."
)

// Error is a failed API call: a non-2xx response or a transport failure
// (StatusCode 0). Message is safe to show to the user.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return e.Message + " (HTTP " + strconv.Itoa(e.StatusCode) + ")"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// messageFromBody extracts the backend's explanation. JSON bodies are
// searched for message, error, title and detail in that order; short plain
// text bodies are used as-is.
func messageFromBody(contentType string, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return MessageGeneric
	}

	if strings.HasPrefix(trimmed, "{") {
		var fields map[string]interface{}
		if err := json.Unmarshal(body, &fields); err == nil {
			for _, key := range []string{"message", "Message", "error", "title", "detail"} {
				if s, ok := fields[key].(string); ok && s != "" {
					return s
				}
			}
		}
		return MessageGeneric
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(body, &s); err == nil && s != "" {
			return s
		}
	}

	if strings.HasPrefix(contentType, "text/plain") && utf8.RuneCountInString(trimmed) <= 200 {
		return trimmed
	}
	return MessageGeneric
}
