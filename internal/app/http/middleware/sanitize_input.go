package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"

	"unbelong-api/internal/api/respond"
	"unbelong-api/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// StripMarkup removes every tag from s and returns plain text. The policy
// escapes what it keeps, so entities are decoded again to store the text as
// typed.
func StripMarkup(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// SanitizeInput strips markup from the named top-level string fields of a
// JSON body, or from every top-level string when no field is named. Used on
// routes that accept text from anonymous readers.
func SanitizeInput(fields ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			respond.Fail(c, nil, apperr.Invalid("Invalid request body"))
			return
		}

		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		var body map[string]any
		if err := dec.Decode(&body); err != nil {
			respond.Fail(c, nil, apperr.Invalid("Invalid request body: malformed JSON"))
			return
		}

		for k, v := range body {
			str, ok := v.(string)
			if !ok || !selected(fields, k) {
				continue
			}
			body[k] = StripMarkup(str)
		}

		clean, err := json.Marshal(body)
		if err != nil {
			respond.Fail(c, nil, apperr.Store("Failed to re-encode request body", err))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(clean))
		c.Request.ContentLength = int64(len(clean))

		c.Next()
	}
}

func selected(fields []string, key string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == key {
			return true
		}
	}
	return false
}
