package httpreq_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/adamwoolhether/httpreq"
	"github.com/adamwoolhether/httpreq/client"
	"github.com/adamwoolhether/httpreq/extract"
	"github.com/adamwoolhether/httpreq/request"
)

func ExampleNewRequest() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"msg":"hello %s"}`, r.URL.Query().Get("name"))
	}))
	defer ts.Close()

	r, err := httpreq.NewRequest(ts.URL, extract.JSON[struct{ Msg string }](), client.WithTimeout(5*time.Second))
	if err != nil {
		fmt.Println("build error:", err)
		return
	}
	defer r.Close()

	resp, err := r.Param("name", "gopher").Get(context.Background())
	if err != nil {
		fmt.Println("get error:", err)
		return
	}

	fmt.Println(resp.Msg)
	// Output: hello gopher
}

func ExampleNewClient() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	c, err := httpreq.NewClient(client.WithUserAgent("example/1.0"))
	if err != nil {
		fmt.Println("build error:", err)
		return
	}
	defer c.Close()

	for _, path := range []string{"/a", "/b"} {
		status, err := request.NewWithClient(ts.URL+path, c, extract.Status()).Post(context.Background())
		if err != nil {
			fmt.Println("post error:", err)
			return
		}
		fmt.Println(path, status)
	}
	// Output:
	// /a 201
	// /b 201
}
