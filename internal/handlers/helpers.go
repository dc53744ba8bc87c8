package handlers

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// bindSparse binds the JSON body into obj and also returns the raw field map
// so callers can tell an explicitly null field from an absent one.
func bindSparse(c *gin.Context, obj any) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, obj); err != nil {
		return nil, err
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return nil, err
	}
	return raw, nil
}

// fieldIsNull reports whether a field was present in the request body with an
// explicit JSON null. Sparse updates need the distinction: an absent nullable
// field stays untouched, a null one is cleared.
func fieldIsNull(raw map[string]json.RawMessage, key string) bool {
	v, ok := raw[key]
	return ok && string(v) == "null"
}
