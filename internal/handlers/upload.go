package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"bessonnitsa/internal/storage"
)

// maxUploadSize is the maximum allowed image upload size (10 MB).
const maxUploadSize = 10 << 20

// allowedImageTypes defines MIME types accepted for event and menu images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// uploadImage implements the shared upload contract: generate a
// randomized object key preserving the original extension, upload the
// file to the given bucket, and return its public URL. Any failure at
// either step yields an error and no URL.
func uploadImage(ctx context.Context, sc *storage.Client, bucket string, fh *multipart.FileHeader) (string, error) {
	if sc == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	if fh.Size > maxUploadSize {
		return "", fmt.Errorf("file %q is too large (max 10 MB)", fh.Filename)
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer file.Close()

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}
	contentType := http.DetectContentType(sniffBuf[:n])
	contentType = strings.Split(contentType, ";")[0]

	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("file type %q is not allowed", contentType)
	}

	// Seek back to start after sniffing.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek upload %q: %w", fh.Filename, err)
	}

	key := storage.RandomKey(fh.Filename)
	if err := sc.Upload(ctx, bucket, key, contentType, file, fh.Size); err != nil {
		return "", err
	}

	return sc.FileURL(bucket, key), nil
}
