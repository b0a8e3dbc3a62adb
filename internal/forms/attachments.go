package forms

import (
	"errors"
	"io"
	"mime/multipart"
	"reflect"
	"time"
)

// ErrAttachmentRetrievalUnsupported is returned when a caller asks for the binary
// behind an attachment record. Only metadata ever crosses the submission boundary.
var ErrAttachmentRetrievalUnsupported = errors.New("attachment retrieval is not supported")

// FileReference is a binary file attached to a form field on the client side.
type FileReference interface {
	FileName() string
	FileSize() int64
	MediaType() string
}

// File is an in-memory file selected by the applicant.
type File struct {
	Name    string
	Type    string
	Content []byte
}

func (f *File) FileName() string  { return f.Name }
func (f *File) FileSize() int64   { return int64(len(f.Content)) }
func (f *File) MediaType() string { return f.Type }

// MultipartFile adapts an uploaded multipart part without reading its body.
type MultipartFile struct {
	Header *multipart.FileHeader
}

func (m MultipartFile) FileName() string  { return m.Header.Filename }
func (m MultipartFile) FileSize() int64   { return m.Header.Size }
func (m MultipartFile) MediaType() string { return m.Header.Header.Get("Content-Type") }

// AttachmentMeta is the transport form of an attachment.
type AttachmentMeta struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	MediaType string `json:"mediaType,omitempty"`
}

// Open always fails: downloading the original file is an external capability.
func (AttachmentMeta) Open() (io.ReadCloser, error) {
	return nil, ErrAttachmentRetrievalUnsupported
}

// Serialize converts a raw client tree into its transport form. File references become
// AttachmentMeta records, dates become RFC 3339 strings, bare byte slices are dropped.
// Serializing an already serialized tree returns an equal tree.
func Serialize(values Values) TransportValues {
	out := make(TransportValues, len(values))
	for key, value := range values {
		if converted, keep := serializeValue(value); keep {
			out[key] = converted
		}
	}
	return out
}

func serializeValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case *multipart.FileHeader:
		if v == nil {
			return nil, true
		}
		return metaOf(MultipartFile{Header: v}), true
	case FileReference:
		if reflect.ValueOf(v).Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil() {
			return nil, true
		}
		return metaOf(v), true
	case AttachmentMeta:
		return v, true
	case *AttachmentMeta:
		if v == nil {
			return nil, true
		}
		return *v, true
	case []byte:
		return nil, false
	case time.Time:
		if v.IsZero() {
			return nil, true
		}
		return v.UTC().Format(time.RFC3339), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil, true
		}
		return v.UTC().Format(time.RFC3339), true
	case map[string]bool:
		cp := make(map[string]bool, len(v))
		for k, b := range v {
			cp[k] = b
		}
		return cp, true
	case []string:
		return append([]string(nil), v...), true
	case string, bool, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v, true
	}

	if m, ok := asMap(value); ok {
		nested := make(map[string]any, len(m))
		for key, item := range m {
			if converted, keep := serializeValue(item); keep {
				nested[key] = converted
			}
		}
		return nested, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		list := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if converted, keep := serializeValue(rv.Index(i).Interface()); keep {
				list = append(list, converted)
			}
		}
		return list, true
	}

	return value, true
}

func metaOf(ref FileReference) AttachmentMeta {
	return AttachmentMeta{
		Name:      ref.FileName(),
		Size:      ref.FileSize(),
		MediaType: ref.MediaType(),
	}
}

// attachmentInfo reads attachment metadata from any accepted attachment shape:
// a live file reference, a typed record, or a decoded {name,size} object.
func attachmentInfo(value any) (AttachmentMeta, bool) {
	switch v := value.(type) {
	case *multipart.FileHeader:
		if v == nil {
			return AttachmentMeta{}, false
		}
		return metaOf(MultipartFile{Header: v}), true
	case FileReference:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return AttachmentMeta{}, false
		}
		return metaOf(v), true
	case AttachmentMeta:
		return v, v.Name != ""
	case *AttachmentMeta:
		if v == nil {
			return AttachmentMeta{}, false
		}
		return *v, v.Name != ""
	}
	m, ok := asMap(value)
	if !ok {
		return AttachmentMeta{}, false
	}
	name, _ := m["name"].(string)
	size, sizeOK := toFloat(m["size"])
	if name == "" || !sizeOK {
		return AttachmentMeta{}, false
	}
	mediaType, _ := m["mediaType"].(string)
	return AttachmentMeta{Name: name, Size: int64(size), MediaType: mediaType}, true
}
