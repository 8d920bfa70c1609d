package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

type upload struct {
	file        multipart.File
	filename    string
	contentType string
	size        int64
}

// formFile opens the multipart field "file". The caller closes the result.
func formFile(c *fiber.Ctx) (*upload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, &badRequest{"FILE_REQUIRED", "file is required"}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &badRequest{"FILE_OPEN_ERROR", "cannot open uploaded file"}
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &upload{file: f, filename: fh.Filename, contentType: ct, size: fh.Size}, nil
}

func (u *upload) Close() error { return u.file.Close() }

type presignedURL struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
