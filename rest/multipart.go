package rest

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// File is one attachment to upload.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// Multipart is a multipart/form-data request body: uploaded files, an
// optional JSON payload part and extra plain form fields.
type Multipart struct {
	Files       []File
	PayloadJSON []byte
	Fields      map[string]string

	// File contents are buffered on first encode so a 429 retry can
	// resend the identical body; the readers are consumed only once.
	buffered [][]byte
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// encode renders the body and returns it with its content type. Safe
// to call repeatedly; every call yields a fresh boundary over the same
// buffered contents.
func (m *Multipart) encode() ([]byte, string, error) {
	if err := m.buffer(); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, f := range m.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[%d]"; filename="%s"`, i, quoteEscaper.Replace(f.Name)))
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		} else {
			header.Set("Content-Type", "application/octet-stream")
		}
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %d: %w", i, err)
		}
		if _, err := part.Write(m.buffered[i]); err != nil {
			return nil, "", fmt.Errorf("write file part %d: %w", i, err)
		}
	}

	if m.PayloadJSON != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="payload_json"`)
		header.Set("Content-Type", "application/json")
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create payload part: %w", err)
		}
		if _, err := part.Write(m.PayloadJSON); err != nil {
			return nil, "", fmt.Errorf("write payload part: %w", err)
		}
	}

	for key, value := range m.Fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("write field %q: %w", key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func (m *Multipart) buffer() error {
	if m.buffered != nil {
		return nil
	}
	contents := make([][]byte, len(m.Files))
	for i, f := range m.Files {
		data, err := io.ReadAll(f.Reader)
		if err != nil {
			return fmt.Errorf("read attachment %d: %w", i, err)
		}
		contents[i] = data
	}
	m.buffered = contents
	return nil
}
