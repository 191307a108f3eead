package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adamwoolhether/restpipe/client"
)

// File streams the body of a GET to url into a temp file next to destPath
// and renames it into place on success. On any error the temp file is
// removed. The returned result is nil only when the download was skipped.
func File(ctx context.Context, c *client.Client, url, destPath string, headers map[string]string, optFns ...Option) (*client.BaseResult, error) {
	opts := options{logger: slog.Default()}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	logger := opts.logger

	if opts.skipExisting {
		if _, err := os.Stat(destPath); err == nil {
			logger.Info("skipping existing file", "path", destPath)
			return nil, nil
		}
	}

	file, err := os.CreateTemp(filepath.Dir(destPath), ".restpipe-dl-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}

	var successful bool
	defer func() {
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Error("defer closing temp file", "error", err)
		}
		if !successful {
			if err := os.Remove(file.Name()); err != nil {
				logger.Error("failed to remove temp file", "error", err)
			}
		}
	}()

	var writer io.Writer = file
	if opts.checksum != nil {
		writer = io.MultiWriter(writer, opts.checksum)
	}

	var pw *progressWriter
	if opts.progress {
		pw = &progressWriter{w: writer, logger: logger, startTime: time.Now()}
		writer = pw
	}

	// The consumer cannot fail the call, so the first write error is kept
	// and later chunks are dropped.
	var (
		written  int64
		writeErr error
	)
	res := c.GetStream(ctx, url, func(ch client.StreamChunk) {
		if ch.IsLast || writeErr != nil {
			return
		}
		n, err := io.WriteString(writer, ch.Data)
		written += int64(n)
		writeErr = err
	}, headers)

	switch {
	case res.Err != nil:
		return res, fmt.Errorf("downloading: %w", res.Err)
	case writeErr != nil:
		return res, fmt.Errorf("writing temp file: %w", writeErr)
	case !res.Success:
		return res, &Error{Err: ErrUnexpectedStatus, Detail: strconv.Itoa(res.StatusCode)}
	}

	if cl, ok := res.Headers["Content-Length"]; ok {
		if want, err := strconv.ParseInt(cl, 10, 64); err == nil && want != written {
			return res, &Error{
				Err:    ErrContentLengthMismatch,
				Detail: fmt.Sprintf("expected %d bytes, got %d", want, written),
			}
		}
	}

	if err := opts.checksum.check(); err != nil {
		return res, err
	}

	if pw != nil {
		pw.log("download complete")
	}

	if err := file.Sync(); err != nil {
		return res, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return res, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(file.Name(), destPath); err != nil {
		return res, fmt.Errorf("renaming temp file: %w", err)
	}

	successful = true

	return res, nil
}
