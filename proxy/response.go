// Package proxy builds the JSON response a Lambda function returns to an
// HTTP proxy integration.
//
// There is no decode path: responses are outputs of a handler, never inputs.
// Bodies are built through the TextPlain, JSON and Binary constructors,
// which keep the content type and the base64 flag consistent, then wrapped
// with NewResponse and serialized with encoding/json:
//
//	resp := proxy.NewResponse(http.StatusOK, proxy.TextPlain("hi")).
//	    AddHeader("X-Request-Id", id)
//	out, err := json.Marshal(resp)
package proxy

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Body is the payload of a proxy response. The wire content is always a
// string; binary payloads are carried as base64 text with IsBase64Encoded
// set. Build bodies with the constructors below rather than by hand.
type Body struct {
	ContentType     string
	Serialized      string
	IsBase64Encoded bool
}

// TextPlain returns a plain-text body holding s verbatim.
func TextPlain(s string) Body {
	return Body{
		ContentType: "text/plain; charset=utf-8",
		Serialized:  s,
	}
}

// JSON returns a body holding the JSON encoding of v.
func JSON(v any) (Body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Body{}, err
	}
	return Body{
		ContentType: "application/json; charset=utf-8",
		Serialized:  string(data),
	}, nil
}

// Binary returns a body carrying raw bytes as base64 text under the given
// content type.
func Binary(contentType string, data []byte) Body {
	return Body{
		ContentType:     contentType,
		Serialized:      base64.StdEncoding.EncodeToString(data),
		IsBase64Encoded: true,
	}
}

// headerEntry accumulates values for one header name. Lookup is
// case-insensitive (the map key is the lowercased name); name keeps the
// last-seen original casing for output.
type headerEntry struct {
	name   string
	values []string
}

// Response is an HTTP proxy integration response.
type Response struct {
	StatusCode int
	Body       Body
	headers    map[string]*headerEntry
}

// NewResponse returns a response with the given status and body and no
// headers.
func NewResponse(status int, body Body) *Response {
	return &Response{
		StatusCode: status,
		Body:       body,
		headers:    map[string]*headerEntry{},
	}
}

func (r *Response) header(name string) *headerEntry {
	key := strings.ToLower(name)
	e, ok := r.headers[key]
	if !ok {
		e = &headerEntry{}
		if r.headers == nil {
			r.headers = map[string]*headerEntry{}
		}
		r.headers[key] = e
	}
	e.name = name
	return e
}

// AddHeader appends value to the header's value list, creating the header if
// absent. Lookup is case-insensitive; repeated calls accumulate in call
// order.
func (r *Response) AddHeader(name, value string) *Response {
	e := r.header(name)
	e.values = append(e.values, value)
	return r
}

// SetHeader replaces the header's value list with the single given value,
// discarding anything added before.
func (r *Response) SetHeader(name, value string) *Response {
	e := r.header(name)
	e.values = []string{value}
	return r
}

// Headers returns a copy of the header map under the original (last-seen)
// casing of each name.
func (r *Response) Headers() map[string][]string {
	out := make(map[string][]string, len(r.headers))
	for _, e := range r.headers {
		out[e.name] = append([]string(nil), e.values...)
	}
	return out
}

type responseWire struct {
	StatusCode        int                 `json:"statusCode"`
	MultiValueHeaders map[string][]string `json:"multiValueHeaders"`
	Body              string              `json:"body"`
	IsBase64Encoded   bool                `json:"isBase64Encoded"`
}

// MarshalJSON encodes the response for the proxy integration. The body's
// content type is inserted as a Content-Type header only when the caller
// did not set one explicitly (under any casing); the body appears as its
// serialized string, not as a nested object.
func (r *Response) MarshalJSON() ([]byte, error) {
	headers := r.Headers()
	if _, ok := r.headers["content-type"]; !ok {
		headers["Content-Type"] = []string{r.Body.ContentType}
	}
	return json.Marshal(responseWire{
		StatusCode:        r.StatusCode,
		MultiValueHeaders: headers,
		Body:              r.Body.Serialized,
		IsBase64Encoded:   r.Body.IsBase64Encoded,
	})
}
