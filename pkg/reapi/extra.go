package reapi

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Extra holds response keys that no typed field claims.
type Extra map[string]json.RawMessage

var knownFieldsCache sync.Map

// knownFields returns the JSON keys claimed by the struct behind t.
func knownFields(t reflect.Type) map[string]struct{} {
	if cached, ok := knownFieldsCache.Load(t); ok {
		fields, _ := cached.(map[string]struct{})

		return fields
	}

	fields := make(map[string]struct{})
	collectFields(t, fields)
	knownFieldsCache.Store(t, fields)

	return fields
}

func collectFields(t reflect.Type, fields map[string]struct{}) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := range t.NumField() {
		field := t.Field(i)

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		if field.Anonymous && name == "" {
			collectFields(field.Type, fields)

			continue
		}

		if !field.IsExported() {
			continue
		}

		if name == "" {
			name = field.Name
		}

		fields[name] = struct{}{}
	}
}

// unmarshalWithExtra decodes data into target and returns the unclaimed keys.
func unmarshalWithExtra(data []byte, target any) (Extra, error) {
	err := json.Unmarshal(data, target)
	if err != nil {
		return nil, err
	}

	known := knownFields(reflect.TypeOf(target))

	var extra Extra

	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, ok := known[name]; ok {
			return true
		}

		if extra == nil {
			extra = make(Extra)
		}

		extra[name] = json.RawMessage(value.Raw)

		return true
	})

	return extra, nil
}

// marshalWithExtra encodes source and re-emits the unclaimed keys.
func marshalWithExtra(source any, extra Extra) ([]byte, error) {
	out, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}

	if len(extra) == 0 {
		return out, nil
	}

	known := knownFields(reflect.TypeOf(source))

	keys := make([]string, 0, len(extra))
	for key := range extra {
		if _, ok := known[key]; !ok {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	for _, key := range keys {
		out, err = sjson.SetRawBytes(out, escapePathComponent(key), extra[key])
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// escapePathComponent escapes the characters sjson treats as path syntax.
func escapePathComponent(key string) string {
	var builder strings.Builder

	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@', '!', ':':
			builder.WriteRune('\\')
		}

		builder.WriteRune(r)
	}

	return builder.String()
}
