package extract

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
	"github.com/tidwall/gjson"
)

// GJSON yields the value at path in a JSON body, using
// https://github.com/tidwall/gjson path syntax.
func GJSON(path string) Extractor[gjson.Result] {
	return Func[gjson.Result](func(resp *http.Response) (gjson.Result, error) {
		if path == "" {
			return gjson.Result{}, fmt.Errorf("provided empty expression")
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("reading body: %w", err)
		}

		if !gjson.ValidBytes(b) {
			return gjson.Result{}, fmt.Errorf("detected invalid JSON")
		}

		result := gjson.GetBytes(b, path)
		if !result.Exists() {
			return gjson.Result{}, fmt.Errorf("could not find node, using expression %s", path)
		}

		return result, nil
	})
}

// XPath yields the inner text of every node matching expr in an XML body.
func XPath(expr string) Extractor[[]string] {
	return Func[[]string](func(resp *http.Response) ([]string, error) {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}

		doc, err := xmlquery.Parse(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		nodes, err := xmlquery.QueryAll(doc, expr)
		if err != nil {
			return nil, fmt.Errorf("xpath %s: %w", expr, err)
		}

		texts := make([]string, 0, len(nodes))
		for _, node := range nodes {
			texts = append(texts, node.InnerText())
		}

		return texts, nil
	})
}

// HTMLXPath yields the inner text of every node matching expr in an
// HTML body.
func HTMLXPath(expr string) Extractor[[]string] {
	return Func[[]string](func(resp *http.Response) ([]string, error) {
		r, err := utf8Body(resp)
		if err != nil {
			return nil, err
		}

		doc, err := htmlquery.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("parsing html: %w", err)
		}

		nodes, err := htmlquery.QueryAll(doc, expr)
		if err != nil {
			return nil, fmt.Errorf("xpath %s: %w", expr, err)
		}

		texts := make([]string, 0, len(nodes))
		for _, node := range nodes {
			texts = append(texts, htmlquery.InnerText(node))
		}

		return texts, nil
	})
}

// CSS yields the inner text of every element matching selector in an
// HTML body.
func CSS(selector string) Extractor[[]string] {
	return Func[[]string](func(resp *http.Response) ([]string, error) {
		sel, err := cascadia.Compile(selector)
		if err != nil {
			return nil, fmt.Errorf("invalid CSS selector: %w", err)
		}

		r, err := utf8Body(resp)
		if err != nil {
			return nil, err
		}

		doc, err := htmlquery.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("parsing html: %w", err)
		}

		nodes := cascadia.QueryAll(doc, sel)
		texts := make([]string, 0, len(nodes))
		for _, node := range nodes {
			texts = append(texts, htmlquery.InnerText(node))
		}

		return texts, nil
	})
}
