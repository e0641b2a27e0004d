package api

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Unwrap returns the value under the first of keys when raw is an object
// that has it, and raw itself otherwise. The backend is not consistent about
// wrapping payloads in {"data": ...}.
func Unwrap(raw json.RawMessage, keys ...string) json.RawMessage {
	res := gjson.ParseBytes(raw)
	if !res.IsObject() {
		return raw
	}
	for _, k := range keys {
		if v := res.Get(k); v.Exists() {
			return json.RawMessage(v.Raw)
		}
	}
	return raw
}

// DecodeList decodes a list payload that is either a bare array or an
// object holding the array under one of keys. null decodes to an empty list.
func DecodeList[T any](raw json.RawMessage, keys ...string) ([]T, error) {
	inner := Unwrap(raw, keys...)
	res := gjson.ParseBytes(inner)
	switch {
	case res.Type == gjson.Null:
		return []T{}, nil
	case !res.IsArray():
		return nil, fmt.Errorf("expected a list, got %s", res.Type)
	}
	out := make([]T, 0, len(res.Array()))
	if err := json.Unmarshal(inner, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeObject decodes an object payload, unwrapping it from keys first.
func DecodeObject[T any](raw json.RawMessage, out *T, keys ...string) error {
	return json.Unmarshal(Unwrap(raw, keys...), out)
}
