// Package download copies HTTP response bodies to disk or to an
// arbitrary writer, with optional checksum validation and progress
// reporting.
//
// [Handle] writes into the destination file, truncating an existing one
// in place and removing a newly created one if the copy fails:
//
//	err := download.Handle(ctx, resp.Body, resp.ContentLength, destPath, logger,
//		download.WithChecksum(sha256.New(), expectedHex),
//	)
//
// [Stream] applies the same options while copying into a caller-owned
// [io.Writer].
//
// Most callers should use [github.com/adamwoolhether/httpreq/request],
// whose Downloader calls into this package.
package download
