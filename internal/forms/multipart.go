package forms

import (
	"mime/multipart"
	"strings"
)

// ValuesFromMultipart assembles a raw value tree from a posted form. A name such as
// "documents.sitePlan" nests one level under "documents". Values posted for a
// boolean-set field are its selected keys; files stay as *multipart.FileHeader
// until serialized. Names listed in skip are left out.
func ValuesFromMultipart(schema *Schema, form *multipart.Form, skip ...string) Values {
	values := Values{}
	if form == nil {
		return values
	}

	excluded := make(map[string]bool, len(skip))
	for _, name := range skip {
		excluded[name] = true
	}

	for name, posted := range form.Value {
		if excluded[name] || len(posted) == 0 {
			continue
		}
		if field := schema.Field(name); field != nil && field.Kind == KindBooleanSet {
			values.set(name, append([]string(nil), posted...))
			continue
		}
		if len(posted) == 1 {
			values.set(name, posted[0])
			continue
		}
		values.set(name, append([]string(nil), posted...))
	}

	for name, headers := range form.File {
		if excluded[name] || len(headers) == 0 {
			continue
		}
		values.set(name, headers[0])
	}

	return values
}

func (v Values) set(name string, value any) {
	group, leaf, nested := strings.Cut(name, ".")
	if !nested {
		v[name] = value
		return
	}
	inner, ok := v[group].(map[string]any)
	if !ok {
		inner = map[string]any{}
		v[group] = inner
	}
	inner[leaf] = value
}
