package post

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"quill/internal/core/blobs"
	"quill/internal/core/posts"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger files spill to temp storage. The blob store enforces the real size
// cap.
const maxMultipartMemory = 8 * 1024 * 1024

// postForm is the decoded body of a create or update request, from either a
// JSON document or a multipart form with an optional file field "image".
type postForm struct {
	Title      string
	Content    string
	ImageURL   string
	Upload     *posts.ImageUpload
	HasTitle   bool
	HasContent bool
	HasImage   bool
}

// decodePostForm reads the request body in whichever of the two supported
// encodings the client chose.
func decodePostForm(r *http.Request) (*postForm, error) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "multipart/form-data" {
		return decodeMultipartForm(r)
	}
	return decodeJSONForm(r)
}

func decodeJSONForm(r *http.Request) (*postForm, error) {
	var body struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		Image   *string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid request body")
	}

	form := &postForm{}
	if body.Title != nil {
		form.Title = *body.Title
		form.HasTitle = true
	}
	if body.Content != nil {
		form.Content = *body.Content
		form.HasContent = true
	}
	if body.Image != nil {
		form.ImageURL = strings.TrimSpace(*body.Image)
		form.HasImage = true
	}
	return form, nil
}

func decodeMultipartForm(r *http.Request) (*postForm, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, fmt.Errorf("invalid multipart form")
	}

	form := &postForm{}
	if values, ok := r.MultipartForm.Value["title"]; ok && len(values) > 0 {
		form.Title = values[0]
		form.HasTitle = true
	}
	if values, ok := r.MultipartForm.Value["content"]; ok && len(values) > 0 {
		form.Content = values[0]
		form.HasContent = true
	}
	if values, ok := r.MultipartForm.Value["image"]; ok && len(values) > 0 {
		form.ImageURL = strings.TrimSpace(values[0])
		form.HasImage = true
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return form, nil
	}
	if err != nil {
		// A text "image" field instead of a file is fine; anything else is
		// a malformed upload.
		if form.HasImage {
			return form, nil
		}
		return nil, fmt.Errorf("invalid image upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, blobs.MaxBlobSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image upload")
	}

	mimeType := header.Header.Get("Content-Type")
	form.Upload = &posts.ImageUpload{Data: data, MimeType: mimeType}
	form.HasImage = true
	return form, nil
}
