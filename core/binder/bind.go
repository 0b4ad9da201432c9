package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Bind copies values into the struct pointed to by v. Field names come from
// the given struct tag; untagged fields use their lower-cased Go name and
// `tag:"-"` skips a field. Scalars take the first value; slices take every
// value and split comma-separated ones.
//
//	type Filter struct {
//		Query string   `form:"q"`
//		Page  int      `form:"page"`
//		Tags  []string `form:"tags"`
//		Draft *bool    `form:"draft"`
//	}
//
//	var f Filter
//	err := binder.Bind(&f, "form", ctx.Query())
func Bind(v any, tag string, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrUnsupportedTarget)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must point to a struct", ErrUnsupportedTarget)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, skip := fieldName(sf, tag)
		if skip {
			continue
		}

		vals := values[name]
		if len(vals) == 0 {
			continue
		}

		if err := assign(field, sf.Type, vals); err != nil {
			return fmt.Errorf("%w: field %s: %w", ErrUnsupportedTarget, sf.Name, err)
		}
	}

	return nil
}

func fieldName(sf reflect.StructField, tag string) (string, bool) {
	t := sf.Tag.Get(tag)
	switch t {
	case "":
		return strings.ToLower(sf.Name), false
	case "-":
		return "", true
	}
	name, _, _ := strings.Cut(t, ",")
	return name, false
}

func assign(field reflect.Value, typ reflect.Type, values []string) error {
	switch typ.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return assign(field.Elem(), typ.Elem(), values)

	case reflect.Slice:
		var items []string
		for _, v := range values {
			for item := range strings.SplitSeq(v, ",") {
				items = append(items, strings.TrimSpace(item))
			}
		}
		slice := reflect.MakeSlice(typ, len(items), len(items))
		for i, item := range items {
			if err := assign(slice.Index(i), typ.Elem(), []string{item}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	value := values[0]

	switch typ.Kind() {
	case reflect.String:
		field.SetString(cleanString(value))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported kind %s", typ.Kind())
	}

	return nil
}

func parseBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}

// cleanString drops NUL, CR, LF and other non-printable runes except tab.
func cleanString(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || (r >= ' ' && unicode.IsPrint(r)) || unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, value)
}
