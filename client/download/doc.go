// Package download streams response bodies of a [client.Client] to disk
// with optional checksum validation and progress reporting.
//
// [File] writes the body to a temporary file alongside the destination
// path as it arrives, then renames it into place once the call succeeded
// and every check passed:
//
//	res, err := download.File(ctx, c, "https://example.com/a.tar.gz", "/tmp/a.tar.gz", nil,
//		download.WithChecksum(sha256.New(), wantHex),
//	)
//
// A non-2xx status is an error here, unlike the rest of the client.
package download
