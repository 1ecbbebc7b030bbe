package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// maxUploadBytes bounds a single image payload. The upstream enforces its
// own limit too; rejecting oversized files here saves the round trip.
const maxUploadBytes = 10 << 20 // 10 MiB

// ImageFile is one file to upload: its original name and raw bytes.
type ImageFile struct {
	Name string
	Data []byte
}

// UploadImage sends one image to the upstream's hosting endpoint and returns
// the hosted URL. The content type is sniffed from the bytes; anything that
// is not an image is rejected before dispatch.
func (c *Client) UploadImage(ctx context.Context, file ImageFile) (string, error) {
	body, contentType, err := encodeMultipart("image", file)
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload/image", nil, contentType, body)
	if err != nil {
		return "", err
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.send(req, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// UploadImages sends several images in one multipart request and returns the
// hosted URLs in upload order.
func (c *Client) UploadImages(ctx context.Context, files []ImageFile) ([]string, error) {
	body, contentType, err := encodeMultipart("images", files...)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload/images", nil, contentType, body)
	if err != nil {
		return nil, err
	}

	var resp struct {
		URLs []string `json:"urls"`
	}
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	return resp.URLs, nil
}

// encodeMultipart builds a multipart body with one part per file under the
// given field name. Each part carries the sniffed image content type —
// mimetype.Detect recognises more formats than the stdlib (WebP, AVIF).
func encodeMultipart(field string, files ...ImageFile) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, file := range files {
		if len(file.Data) == 0 {
			return nil, "", fmt.Errorf("upstream: upload %q is empty", file.Name)
		}
		if len(file.Data) > maxUploadBytes {
			return nil, "", fmt.Errorf("upstream: upload %q exceeds %d bytes", file.Name, maxUploadBytes)
		}

		detected := mimetype.Detect(file.Data)
		if !strings.HasPrefix(detected.String(), "image/") {
			return nil, "", fmt.Errorf("upstream: upload %q is not an image (detected %s)", file.Name, detected)
		}

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Name))
		header.Set("Content-Type", detected.String())

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("upstream: building multipart body: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("upstream: building multipart body: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("upstream: building multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
