package feed

import (
	"encoding/base64"
	"encoding/json"
)

// cursorPayload is the decoded form of an opaque pagination cursor.
type cursorPayload struct {
	Offset int `json:"offset"`
}

// encodeCursor produces an opaque cursor for the given offset.
func encodeCursor(offset int) string {
	data, _ := json.Marshal(cursorPayload{Offset: offset})
	return base64.StdEncoding.EncodeToString(data)
}

// decodeCursor extracts the offset from a cursor. Malformed or negative
// cursors decode to offset 0 so a corrupted cursor restarts the feed instead
// of failing the request.
func decodeCursor(cursor string) int {
	if cursor == "" {
		return 0
	}
	data, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0
	}
	var p cursorPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Offset < 0 {
		return 0
	}
	return p.Offset
}
