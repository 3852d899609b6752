package http

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// fieldPath locates the value in body that cannot be decoded into a value of
// type t. Array elements are reported as [i], object keys are joined with
// dots, e.g. "[1].endpoints[0].port". It returns "" when no such value is
// found.
func fieldPath(body []byte, t reflect.Type) string {
	return locate(gjson.ParseBytes(body), t, "")
}

func locate(value gjson.Result, t reflect.Type, path string) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch {
	case value.IsArray() && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array):
		return locateElement(value, t.Elem(), path)
	case value.IsObject() && t.Kind() == reflect.Map:
		return locateMapValue(value, t.Elem(), path)
	case value.IsObject() && t.Kind() == reflect.Struct:
		return locateField(value, t, path)
	}

	return path
}

func locateElement(value gjson.Result, elem reflect.Type, path string) string {
	found := ""
	index := 0

	value.ForEach(func(_, item gjson.Result) bool {
		if !decodes(item, elem) {
			found = locate(item, elem, path+"["+strconv.Itoa(index)+"]")

			return false
		}

		index++

		return true
	})

	if found == "" {
		return path
	}

	return found
}

func locateMapValue(value gjson.Result, elem reflect.Type, path string) string {
	found := ""

	value.ForEach(func(key, item gjson.Result) bool {
		if !decodes(item, elem) {
			found = locate(item, elem, joinKey(path, key.String()))

			return false
		}

		return true
	})

	if found == "" {
		return path
	}

	return found
}

func locateField(value gjson.Result, t reflect.Type, path string) string {
	fields := jsonFields(t)
	found := ""

	value.ForEach(func(key, item gjson.Result) bool {
		field, ok := lookupField(fields, key.String())
		if !ok {
			return true
		}

		if !decodes(item, field) {
			found = locate(item, field, joinKey(path, key.String()))

			return false
		}

		return true
	})

	if found == "" {
		return path
	}

	return found
}

// jsonFields maps JSON keys to field types the way encoding/json does,
// including promoted fields of embedded structs.
func jsonFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type)

	for i := range t.NumField() {
		field := t.Field(i)

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")

		embedded := field.Type
		for embedded.Kind() == reflect.Pointer {
			embedded = embedded.Elem()
		}

		if field.Anonymous && name == "" && embedded.Kind() == reflect.Struct {
			for key, nested := range jsonFields(embedded) {
				if _, ok := fields[key]; !ok {
					fields[key] = nested
				}
			}

			continue
		}

		if !field.IsExported() {
			continue
		}

		if name == "" {
			name = field.Name
		}

		fields[name] = field.Type
	}

	return fields
}

func lookupField(fields map[string]reflect.Type, key string) (reflect.Type, bool) {
	if field, ok := fields[key]; ok {
		return field, true
	}

	for name, field := range fields {
		if strings.EqualFold(name, key) {
			return field, true
		}
	}

	return nil, false
}

func decodes(value gjson.Result, t reflect.Type) bool {
	return json.Unmarshal([]byte(value.Raw), reflect.New(t).Interface()) == nil
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}
