package statussync

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"pc_restarter/internal/models"
)

var errNotObject = errors.New("frame is not a JSON object")

var nullLiteral = []byte("null")

// decodeFrame parses one text frame into a patch.
// Keys are decoded one by one so a value of the wrong type is skipped
// without touching its field or the rest of the frame. A field's alias key
// is read only when its json key is absent or null.
func decodeFrame(frame []byte) (models.StatusPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(frame, &raw); err != nil {
		return models.StatusPatch{}, err
	}
	if raw == nil {
		return models.StatusPatch{}, errNotObject
	}

	var patch models.StatusPatch
	v := reflect.ValueOf(&patch).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		val, ok := lookupKey(raw, f.Tag)
		if !ok {
			continue
		}
		target := reflect.New(f.Type.Elem())
		if err := json.Unmarshal(val, target.Interface()); err != nil {
			continue
		}
		v.Field(i).Set(target)
	}
	return patch, nil
}

func lookupKey(raw map[string]json.RawMessage, tag reflect.StructTag) (json.RawMessage, bool) {
	name, _, _ := strings.Cut(tag.Get("json"), ",")
	for _, key := range []string{name, tag.Get("alias")} {
		if key == "" {
			continue
		}
		if val, ok := raw[key]; ok && !bytes.Equal(bytes.TrimSpace(val), nullLiteral) {
			return val, true
		}
	}
	return nil, false
}
