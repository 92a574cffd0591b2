package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	// Registered so image.DecodeConfig can sniff the formats SteamGridDB
	// actually serves.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrEmptyPayload means the CDN returned zero bytes for an asset URL.
var ErrEmptyPayload = errors.New("downloaded 0 bytes")

// ErrNotAnImage means the payload does not look like image data — usually an
// HTML error page served with status 200.
var ErrNotAnImage = errors.New("payload is not an image")

// Transferrer downloads selected asset bytes and persists them atomically.
// Callers decide whether a transfer should happen at all (existence checks,
// force); Transfer assumes the decision is made.
type Transferrer struct {
	client CatalogClient
	logger *slog.Logger
}

// NewTransferrer creates a transferrer backed by the given client.
func NewTransferrer(client CatalogClient, logger *slog.Logger) *Transferrer {
	return &Transferrer{client: client, logger: logger}
}

// Transfer fetches imageURL and writes it to target via a temporary sibling
// file and an atomic rename. Once target exists it is always a complete
// payload: a failure at any step leaves at most a stray .tmp file, never a
// corrupt or truncated file at the canonical path. After the bytes have
// arrived, the write runs to completion even if ctx is already canceled.
func (t *Transferrer) Transfer(ctx context.Context, imageURL, target string) error {
	data, err := t.client.FetchImage(ctx, imageURL)
	if err != nil {
		return fmt.Errorf("download error: %w", err)
	}
	if len(data) == 0 {
		return ErrEmptyPayload
	}
	if err := validatePayload(data); err != nil {
		return err
	}

	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		t.logger.Debug("downloaded asset",
			"url", imageURL,
			"format", format,
			"width", cfg.Width,
			"height", cfg.Height,
		)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename failed: %w", err)
	}
	return nil
}

// validatePayload rejects payloads that are not image data. DecodeConfig
// covers jpeg/png/webp; content sniffing catches the remaining image types
// (ico, bmp) without pulling in decoders for them.
func validatePayload(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		return nil
	}
	if strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil
	}
	return ErrNotAnImage
}
