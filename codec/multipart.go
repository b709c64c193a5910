package codec

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// FormFile is a multipart/form-data encoding of a single file under a named
// form field. Its content type carries the generated boundary and replaces
// the codec's default content type on upload requests.
type FormFile struct {
	body        []byte
	contentType string
}

// EncodeFormFile reads the file at path and encodes it as a multipart body
// under fieldName.
func EncodeFormFile(path, fieldName string) (*FormFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return &FormFile{body: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

// Bytes returns the boundary-delimited body.
func (f *FormFile) Bytes() []byte {
	return f.body
}

// ContentType returns "multipart/form-data; boundary=...".
func (f *FormFile) ContentType() string {
	return f.contentType
}

// Size returns the total body length in bytes.
func (f *FormFile) Size() int {
	return len(f.body)
}
