// Package request provides a fluent builder for single HTTP calls.
//
// # Building a Request
//
// A [Request] collects parameters, headers and an optional raw body, then
// one terminal call executes it and converts the response through an
// [github.com/adamwoolhether/httpreq/extract.Extractor]:
//
//	r, err := request.New("https://api.example.com/v1/items", extract.JSON[[]Item]())
//	defer r.Close()
//
//	items, err := r.Param("page", "2").
//		ResultAsJSONString().
//		Get(ctx)
//
// GET sends the parameters as a query string. POST, PUT and PATCH send the
// raw body given to [Request.RequestBody] if any, else the parameters
// form-encoded in the charset chosen with [Request.Encode]. DELETE sends
// no body.
//
// # Sharing a Client
//
// [New] builds a private client that [Request.Close] releases. To share
// one across many requests build it once and use [NewWithClient]; closing
// such a Request leaves the client open.
//
// # Uploading and Downloading
//
// [Request.Upload] posts a file as multipart/form-data. [Request.Download]
// returns a [Downloader] that streams the body to a file, a directory or
// an [io.Writer]:
//
//	_, err := r.Download().WriteFile(ctx, "/tmp/reports")
//
// A non-200 response is never written; the extractor's result for it is
// returned instead.
package request
