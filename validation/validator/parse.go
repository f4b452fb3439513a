package validator

import (
	"bytes"
	"encoding/json"

	"github.com/ncobase/posts/ecode"
)

// Parse decodes raw JSON into a new T. Field names match case-insensitively.
// A JSON null decodes to (nil, nil); malformed input returns an error carrying
// ecode.ErrInvalidFormat.
func Parse[T any](raw []byte) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var out *T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, ecode.ErrInvalidFormat.Wrap(err)
	}
	return out, nil
}
