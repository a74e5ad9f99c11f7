package test

import (
	"bytes"
	"mime/multipart"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// FormFile is a file for a multipart form.
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartForm encodes the fields and files as multipart form.
//
// The body is returned as a buffer together with a map for the HTTP request headers.
func MultipartForm(t *testing.T, fields map[string]string, files ...*FormFile) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	// Stable order for reproducible requests
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		require.Nil(t, mw.WriteField(k, fields[k]))
	}

	for _, f := range files {
		w, err := mw.CreateFormFile(f.Field, f.Filename)
		require.Nil(t, err)

		_, err = w.Write(f.Content)
		require.Nil(t, err)
	}

	require.Nil(t, mw.Close())

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}
