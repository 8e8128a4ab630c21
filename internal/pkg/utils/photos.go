package utils

import (
	"encoding/json"
	"strings"
)

// EncodePhotos stores a photo list as a JSON array column.
func EncodePhotos(photos []string) string {
	clean := make([]string, 0, len(photos))
	for _, p := range photos {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	if len(clean) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(clean)
	return string(data)
}

// DecodePhotos reads the column back; legacy comma-separated values are accepted.
func DecodePhotos(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var photos []string
	if err := json.Unmarshal([]byte(s), &photos); err != nil {
		photos = strings.Split(s, ",")
		for i := range photos {
			photos[i] = strings.TrimSpace(photos[i])
		}
	}
	return photos
}
