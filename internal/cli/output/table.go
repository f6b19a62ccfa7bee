package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// placeholder is printed for zero strings, nil pointers and empty
// collections.
const placeholder = "-"

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// TableFormatter prints values as aligned two-column tables.
//
// A struct becomes FIELD/VALUE rows in declaration order, nested structs
// flattened into dotted names. A map becomes KEY/VALUE rows sorted by key.
// A *Table is rendered as is. Anything else is printed as indented JSON.
type TableFormatter struct {
	NoHeaders bool
}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch t := data.(type) {
	case nil:
		return nil
	case *Table:
		return t.RenderWithOptions(w, f.NoHeaders)
	case Table:
		return t.RenderWithOptions(w, f.NoHeaders)
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	table := &Table{}
	switch {
	case v.Kind() == reflect.Struct && !isLeaf(v.Type()):
		table.SetHeaders("FIELD", "VALUE")
		appendFields(table, "", v)
	case v.Kind() == reflect.Map:
		table.SetHeaders("KEY", "VALUE")
		iter := v.MapRange()
		for iter.Next() {
			table.AddRow(cell(iter.Key()), cell(iter.Value()))
		}
		slices.SortFunc(table.Rows, func(a, b []string) int { return strings.Compare(a[0], b[0]) })
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return table.RenderWithOptions(w, f.NoHeaders)
}

// isLeaf reports whether values of t print as a single cell.
func isLeaf(t reflect.Type) bool {
	return t == timeType
}

func appendFields(table *Table, prefix string, v reflect.Value) {
	for _, field := range reflect.VisibleFields(v.Type()) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		name, ok := columnName(field)
		if !ok {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		fv, err := v.FieldByIndexErr(field.Index)
		if err != nil {
			// promoted through a nil embedded pointer
			table.AddRow(name, placeholder)
			continue
		}
		if fv.Kind() == reflect.Pointer && !fv.IsNil() {
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Struct && !isLeaf(fv.Type()) {
			appendFields(table, name, fv)
			continue
		}
		table.AddRow(name, cell(fv))
	}
}

// columnName takes the yaml tag, then the json tag, then the snake_case
// field name. A "-" tag hides the field.
func columnName(field reflect.StructField) (string, bool) {
	for _, key := range []string{"yaml", "json"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		switch name {
		case "":
			continue
		case "-":
			return "", false
		default:
			return name, true
		}
	}
	return toSnakeCase(field.Name), true
}

// cell renders a leaf value.
func cell(v reflect.Value) string {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return placeholder
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return placeholder
	}

	switch v.Type() {
	case timeType:
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return placeholder
		}
		return t.Local().Format(time.DateTime)
	case durationType:
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.String:
		if v.Len() == 0 {
			return placeholder
		}
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return placeholder
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = cell(v.Index(i))
		}
		return strings.Join(parts, ", ")
	case reflect.Map:
		if v.Len() == 0 {
			return placeholder
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	}
	return fmt.Sprint(v.Interface())
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if 'A' <= r && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Table is a set of rows printed with aligned columns.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render prints the table with its headers.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions prints the table, optionally without headers.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders replaces the headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}
