package http

import (
	"net/url"
	"strings"
)

// Content types set as a side effect of choosing a body kind.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// BodyKind identifies which payload variant a Body holds.
type BodyKind int

const (
	// BodyNone means the request is sent without a payload.
	BodyNone BodyKind = iota
	// BodyBuffer holds opaque bytes, typically serialized JSON.
	BodyBuffer
	// BodyForms holds name/value pairs that are URL-encoded when the request is built.
	BodyForms
)

func (k BodyKind) String() string {
	switch k {
	case BodyNone:
		return "none"
	case BodyBuffer:
		return "buffer"
	case BodyForms:
		return "forms"
	default:
		return "unknown"
	}
}

// FormField is one name/value pair of a form body.
type FormField struct {
	Name  string
	Value string
}

// Body is the payload of a Request. Exactly one variant is active at a time;
// the zero value is an empty body.
type Body struct {
	kind   BodyKind
	buffer []byte
	forms  []FormField
}

// Kind reports the active variant.
func (b Body) Kind() BodyKind {
	return b.kind
}

// Buffer returns the raw bytes of a BodyBuffer, or nil for other kinds.
func (b Body) Buffer() []byte {
	if b.kind != BodyBuffer {
		return nil
	}
	return b.buffer
}

// Forms returns the accumulated fields of a BodyForms in insertion order,
// or nil for other kinds.
func (b Body) Forms() []FormField {
	if b.kind != BodyForms {
		return nil
	}
	out := make([]FormField, len(b.forms))
	copy(out, b.forms)
	return out
}

// Encode returns the bytes that go on the wire. BodyNone encodes to nil.
func (b Body) Encode() []byte {
	switch b.kind {
	case BodyBuffer:
		return b.buffer
	case BodyForms:
		return []byte(encodeForm(b.forms))
	default:
		return nil
	}
}

// withBuffer replaces whatever the body held with raw bytes.
func (b Body) withBuffer(buf []byte) Body {
	return Body{kind: BodyBuffer, buffer: buf}
}

// withForm appends a field, starting a fresh field list when the body was
// not already a form. The bool reports whether the kind changed.
func (b Body) withForm(name, value string) (Body, bool) {
	if b.kind == BodyForms {
		b.forms = append(b.forms, FormField{Name: name, Value: value})
		return b, false
	}
	return Body{kind: BodyForms, forms: []FormField{{Name: name, Value: value}}}, true
}

// encodeForm serializes pairs in order; url.Values.Encode would sort them.
func encodeForm(fields []FormField) string {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(f.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(f.Value))
	}
	return sb.String()
}
