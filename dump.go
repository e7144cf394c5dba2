package logging

import (
	"fmt"
	"reflect"
	"sort"
)

// Maximum recursion depth to prevent stack overflow
const maxDumpDepth = 10

// Slices and arrays longer than this are truncated.
const maxDumpElements = 10

// renderMetadata flattens md into sorted "key=value" lines. Nested maps,
// slices and structs expand into dotted/indexed keys, e.g. "user.name=ada"
// or "tags[0]=x".
func renderMetadata(md Metadata) []string {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		// Use a map to track visited pointers to prevent infinite recursion
		visited := make(map[uintptr]bool)
		lines = dumpValue(lines, md[k], k, visited, 0)
	}
	return lines
}

// dumpValue is the recursive helper for renderMetadata
func dumpValue(lines []string, v interface{}, prefix string, visited map[uintptr]bool, depth int) []string {
	if depth > maxDumpDepth {
		return append(lines, prefix+"=<max depth reached>")
	}

	if v == nil {
		return append(lines, prefix+"=<nil>")
	}

	// Types that know how to print themselves are not walked.
	switch t := v.(type) {
	case error:
		return append(lines, prefix+"="+t.Error())
	case fmt.Stringer:
		return append(lines, prefix+"="+t.String())
	}

	val := reflect.ValueOf(v)

	// Safely unwrap interfaces and handle pointers, with cycle detection.
	// Avoid calling Pointer() on unsupported kinds.
	for {
		switch val.Kind() {
		case reflect.Interface:
			if val.IsNil() {
				return append(lines, prefix+"=<nil>")
			}
			val = val.Elem()
			continue
		case reflect.Ptr:
			if val.IsNil() {
				return append(lines, prefix+"=<nil>")
			}
			ptr := val.Pointer()
			if visited[ptr] {
				return append(lines, prefix+"=<circular reference>")
			}
			visited[ptr] = true
			val = val.Elem()
		default:
			// No-op
		}
		break
	}

	typ := val.Type()

	switch val.Kind() {
	case reflect.Struct:
		n := 0
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			fieldVal := val.Field(i)

			// Skip unexported fields
			if !fieldVal.CanInterface() {
				continue
			}
			n++
			lines = dumpValue(lines, fieldVal.Interface(), prefix+"."+field.Name, visited, depth+1)
		}
		if n == 0 {
			lines = append(lines, prefix+"={}")
		}

	case reflect.Map:
		if val.Len() == 0 {
			return append(lines, prefix+"={}")
		}
		keys := make([]string, 0, val.Len())
		values := make(map[string]reflect.Value, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			keyStr := fmt.Sprintf("%v", iter.Key().Interface())
			keys = append(keys, keyStr)
			values[keyStr] = iter.Value()
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = dumpValue(lines, values[k].Interface(), prefix+"."+k, visited, depth+1)
		}

	case reflect.Slice, reflect.Array:
		if typ.Elem().Kind() == reflect.Uint8 {
			return append(lines, fmt.Sprintf("%s=%x", prefix, val.Interface()))
		}
		if val.Len() == 0 {
			return append(lines, prefix+"=[]")
		}
		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			elem := val.Index(i)
			elemPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			if elem.CanInterface() {
				lines = dumpValue(lines, elem.Interface(), elemPrefix, visited, depth+1)
			} else {
				lines = append(lines, elemPrefix+"=<unexported>")
			}
		}
		if val.Len() > maxDumpElements {
			lines = append(lines, fmt.Sprintf("%s=... (%d more elements)", prefix, val.Len()-maxDumpElements))
		}

	default:
		if val.IsValid() && val.CanInterface() {
			lines = append(lines, fmt.Sprintf("%s=%v", prefix, val.Interface()))
		} else {
			lines = append(lines, fmt.Sprintf("%s=%v", prefix, v))
		}
	}
	return lines
}
