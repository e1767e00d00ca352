package api

import (
	"encoding/json"
	"net/http"
)

// HTMXResponseBuilder builds HTML fragment responses with HX-Trigger events.
type HTMXResponseBuilder struct {
	triggers   map[string]interface{}
	statusCode int
	body       []byte
}

// NewHTMXResponse creates a new response builder with default 200 status.
func NewHTMXResponse() *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		triggers:   make(map[string]interface{}),
		statusCode: http.StatusOK,
	}
}

func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.statusCode = code
	return b
}

// Trigger adds a named event with optional data to the HX-Trigger header.
func (b *HTMXResponseBuilder) Trigger(name string, data interface{}) *HTMXResponseBuilder {
	b.triggers[name] = data
	return b
}

// TriggerProjectionUpdated announces a fresh result to listeners on the page.
func (b *HTMXResponseBuilder) TriggerProjectionUpdated(final string, positive bool) *HTMXResponseBuilder {
	return b.Trigger("projection:updated", map[string]interface{}{"final": final, "positive": positive})
}

// TriggerInputsRejected tells the page which fields failed.
func (b *HTMXResponseBuilder) TriggerInputsRejected(fields []FieldErrorDTO) *HTMXResponseBuilder {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field
	}
	return b.Trigger("inputs:rejected", map[string]interface{}{"fields": names})
}

func (b *HTMXResponseBuilder) HTML(body []byte) *HTMXResponseBuilder {
	b.body = body
	return b
}

// Write sends headers and body.
func (b *HTMXResponseBuilder) Write(w http.ResponseWriter) error {
	if len(b.triggers) > 0 {
		data, err := json.Marshal(b.triggers)
		if err != nil {
			return err
		}
		w.Header().Set("HX-Trigger", string(data))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(b.statusCode)
	_, err := w.Write(b.body)
	return err
}
