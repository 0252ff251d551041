package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/pkg/errors"
)

// FileAttachment is an optional file part on a multipart create/update, such
// as a service category image.
type FileAttachment struct {
	Field    string // form field name, e.g. "CategoryImageFile"
	Filename string
	Content  io.Reader
}

// PostForm sends fields (and an optional file) as multipart form data and
// decodes the envelope's data into T.
func PostForm[T any](ctx context.Context, c *Client, path string, fields map[string]string, file *FileAttachment) (T, error) {
	return formRoundTrip[T](ctx, c, http.MethodPost, path, fields, file)
}

// PutForm is the multipart counterpart of Put.
func PutForm[T any](ctx context.Context, c *Client, path string, fields map[string]string, file *FileAttachment) (T, error) {
	return formRoundTrip[T](ctx, c, http.MethodPut, path, fields, file)
}

func formRoundTrip[T any](ctx context.Context, c *Client, method, path string, fields map[string]string, file *FileAttachment) (T, error) {
	var zero T

	body, contentType, err := encodeForm(fields, file)
	if err != nil {
		return zero, errors.Wrapf(err, "[api.formRoundTrip] encoding form for %s", path)
	}

	resp, err := c.Do(ctx, method, path, body, contentType)
	if err != nil {
		return zero, err
	}
	return decodeEnvelope[T](resp, method, path)
}

func encodeForm(fields map[string]string, file *FileAttachment) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// stable field order keeps request bodies reproducible in tests
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.WriteField(name, fields[name]); err != nil {
			return nil, "", err
		}
	}

	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
