package extract_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/httpreq/client"
	"github.com/adamwoolhether/httpreq/extract"
)

func response(status int, contentType, body string) *http.Response {
	h := make(http.Header)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}

	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestString(t *testing.T) {
	testCases := map[string]struct {
		contentType string
		body        string
		exp         string
	}{
		"plainASCII": {contentType: "text/plain", body: "hello", exp: "hello"},
		"utf8":       {contentType: "text/plain; charset=utf-8", body: "héllo", exp: "héllo"},
		"latin1":     {contentType: "text/plain; charset=iso-8859-1", body: "caf\xe9", exp: "café"},
		"noHeader":   {body: `{"a":1}`, exp: `{"a":1}`},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := extract.String().Extract(response(http.StatusOK, tc.contentType, tc.body))
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if got != tc.exp {
				t.Errorf("got %q, want %q", got, tc.exp)
			}
		})
	}
}

func TestBytesStatusNone(t *testing.T) {
	b, err := extract.Bytes().Extract(response(http.StatusOK, "", "raw"))
	if err != nil || string(b) != "raw" {
		t.Errorf("Bytes: got %q, %v", b, err)
	}

	code, err := extract.Status().Extract(response(http.StatusTeapot, "", ""))
	if err != nil || code != http.StatusTeapot {
		t.Errorf("Status: got %d, %v", code, err)
	}

	v, err := extract.None[*string]().Extract(response(http.StatusOK, "", "ignored"))
	if err != nil || v != nil {
		t.Errorf("None: got %v, %v", v, err)
	}
}

func TestJSON(t *testing.T) {
	type item struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	got, err := extract.JSON[item]().Extract(response(http.StatusOK, "application/json", `{"id":7,"name":"seven"}`))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if diff := cmp.Diff(item{ID: 7, Name: "seven"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	raw, err := extract.JSON[map[string]any](extract.UseNumber()).Extract(response(http.StatusOK, "", `{"id":12345678901234567}`))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n, ok := raw["id"].(json.Number); !ok || n.String() != "12345678901234567" {
		t.Errorf("expected json.Number 12345678901234567, got %T %v", raw["id"], raw["id"])
	}

	_, err = extract.JSON[item](extract.DisallowUnknownFields()).Extract(response(http.StatusOK, "", `{"id":1,"extra":true}`))
	if err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestExpect(t *testing.T) {
	ext := extract.Expect(http.StatusOK, extract.String())

	got, err := ext.Extract(response(http.StatusOK, "", "fine"))
	if err != nil || got != "fine" {
		t.Fatalf("got %q, %v", got, err)
	}

	_, err = ext.Extract(response(http.StatusNotFound, "", "missing"))
	var statusErr *client.UnexpectedStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected UnexpectedStatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusNotFound || statusErr.Body != "missing" {
		t.Errorf("unexpected error contents: %+v", statusErr)
	}
	if !errors.Is(err, client.ErrUnexpectedStatusCode) {
		t.Error("expected ErrUnexpectedStatusCode")
	}

	_, err = ext.Extract(response(http.StatusUnauthorized, "", "denied"))
	if !errors.Is(err, client.ErrAuthFailure) || !errors.Is(err, client.ErrUnexpectedStatusCode) {
		t.Errorf("expected auth failure joined with unexpected status, got: %v", err)
	}
}

func TestGJSON(t *testing.T) {
	body := `{"user":{"name":"ana","tags":["a","b"]}}`

	got, err := extract.GJSON("user.name").Extract(response(http.StatusOK, "", body))
	if err != nil || got.String() != "ana" {
		t.Errorf("got %q, %v", got.String(), err)
	}

	got, err = extract.GJSON("user.tags.#").Extract(response(http.StatusOK, "", body))
	if err != nil || got.Int() != 2 {
		t.Errorf("got %d, %v", got.Int(), err)
	}

	if _, err := extract.GJSON("user.age").Extract(response(http.StatusOK, "", body)); err == nil {
		t.Error("expected error for missing node")
	}
	if _, err := extract.GJSON("a").Extract(response(http.StatusOK, "", "{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestXPath(t *testing.T) {
	body := `<?xml version="1.0"?><books><book><title>Go</title></book><book><title>Rust</title></book></books>`

	got, err := extract.XPath("//book/title").Extract(response(http.StatusOK, "application/xml", body))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if diff := cmp.Diff([]string{"Go", "Rust"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLQueries(t *testing.T) {
	body := `<html><body><ul><li class="x">one</li><li>two</li><li class="x">three</li></ul></body></html>`

	got, err := extract.HTMLXPath("//li").Extract(response(http.StatusOK, "text/html; charset=utf-8", body))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two", "three"}, got); diff != "" {
		t.Errorf("xpath mismatch (-want +got):\n%s", diff)
	}

	got, err = extract.CSS("li.x").Extract(response(http.StatusOK, "text/html; charset=utf-8", body))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "three"}, got); diff != "" {
		t.Errorf("css mismatch (-want +got):\n%s", diff)
	}

	if _, err := extract.CSS("li[").Extract(response(http.StatusOK, "text/html", body)); err == nil {
		t.Error("expected error for invalid selector")
	}
}
