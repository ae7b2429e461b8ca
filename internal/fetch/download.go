package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// partialSuffix is appended to the destination path while downloading.
// The partial file lives in the destination directory so the final rename
// never crosses a filesystem boundary.
const partialSuffix = ".partial"

// DownloadResult describes a completed image download.
type DownloadResult struct {
	// Path is the final destination path of the image.
	Path string

	// BytesWritten is the image size in bytes.
	BytesWritten int64

	// ContentType is the MIME type reported by the server.
	ContentType string
}

// DownloadImage streams the image at imageURL to dest, replacing any
// existing file only after the download fully succeeds.
//
// Design decision: We stream to a sibling .partial file and rename it over
// dest at the end. A failed or truncated download therefore never touches
// the previous day's wallpaper, which the OS may still be displaying from
// that exact path.
func (c *Client) DownloadImage(ctx context.Context, imageURL, dest string) (*DownloadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s returned %s", ErrBadStatus, imageURL, resp.Status)
	}

	if resp.ContentLength > c.maxImageSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrImageTooLarge, resp.ContentLength, c.maxImageSize)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return nil, fmt.Errorf("%w: failed to create destination directory: %w", ErrImageWrite, err)
	}

	partial := dest + partialSuffix
	n, err := c.writePartial(resp.Body, partial)
	if err != nil {
		// Best effort cleanup; the destination was never touched.
		_ = os.Remove(partial) //nolint:errcheck
		return nil, err
	}

	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial) //nolint:errcheck
		return nil, fmt.Errorf("%w: failed to replace %s: %w", ErrImageWrite, dest, err)
	}

	return &DownloadResult{
		Path:         dest,
		BytesWritten: n,
		ContentType:  resp.Header.Get("Content-Type"),
	}, nil
}

// writePartial streams body to the partial file, syncing before close so
// the subsequent rename publishes fully durable bytes.
func (c *Client) writePartial(body io.Reader, partial string) (int64, error) {
	f, err := os.OpenFile(partial, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Destination comes from config
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create %s: %w", ErrImageWrite, partial, err)
	}

	// Read one byte past the limit so an oversized image is detected
	// instead of silently truncated. The file side is wrapped so a
	// failed disk write (disk full, permission loss) keeps its
	// ErrImageWrite identity instead of looking like a network fault.
	n, err := io.Copy(&taggedWriter{w: f}, io.LimitReader(body, c.maxImageSize+1))
	if err != nil {
		_ = f.Close() //nolint:errcheck
		return n, fmt.Errorf("failed to download image body: %w", err)
	}
	if n > c.maxImageSize {
		_ = f.Close() //nolint:errcheck
		return n, fmt.Errorf("%w: more than %d bytes", ErrImageTooLarge, c.maxImageSize)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close() //nolint:errcheck
		return n, fmt.Errorf("%w: failed to sync %s: %w", ErrImageWrite, partial, err)
	}
	if err := f.Close(); err != nil {
		return n, fmt.Errorf("%w: failed to close %s: %w", ErrImageWrite, partial, err)
	}

	return n, nil
}

// taggedWriter marks every write failure with ErrImageWrite. io.Copy
// returns a single error for both sides of the stream; the tag is how
// callers tell a local disk failure apart from a dropped connection.
type taggedWriter struct {
	w io.Writer
}

// Write writes p and wraps any error with ErrImageWrite.
func (t *taggedWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrImageWrite, err)
	}
	return n, nil
}
