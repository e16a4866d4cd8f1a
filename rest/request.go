package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Request is one logical API call, built by an endpoint method and
// consumed by the dispatcher. Body and Multipart are mutually
// exclusive; both nil means an empty request body.
type Request struct {
	Route     Route
	Reason    string
	Header    http.Header
	Body      []byte
	Multipart *Multipart
	Params    url.Values
}

// newRequest builds a bodyless request for the route.
func newRequest(route Route) *Request {
	return &Request{Route: route}
}

// newJSONRequest marshals payload as the request body. A nil payload
// is the same as newRequest.
func newJSONRequest(route Route, payload any) (*Request, error) {
	req := &Request{Route: route}
	if payload == nil {
		return req, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	req.Body = body
	return req, nil
}

// jsonOrMultipart picks the body shape for a message-like payload:
// plain JSON when there are no files, multipart with the JSON as the
// payload part otherwise.
func jsonOrMultipart(route Route, payload any, files []File) (*Request, error) {
	if len(files) == 0 {
		return newJSONRequest(route, payload)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return &Request{
		Route:     route,
		Multipart: &Multipart{Files: files, PayloadJSON: body},
	}, nil
}

// withReason attaches an audit log reason, dropped when empty.
func (r *Request) withReason(reason string) *Request {
	r.Reason = reason
	return r
}

// withParams attaches query parameters, dropped when empty.
func (r *Request) withParams(params url.Values) *Request {
	if len(params) > 0 {
		r.Params = params
	}
	return r
}

// encodeReason percent-encodes an audit log reason so the header value
// stays ASCII-safe regardless of what the caller typed.
func encodeReason(reason string) string {
	return url.PathEscape(reason)
}

// executor builds and sends one HTTP exchange. It holds the immutable
// client configuration and no per-request state, so concurrent sends
// never contend here.
type executor struct {
	baseURL   string
	token     string
	userAgent string
	client    *http.Client
}

// send performs the exchange. Any HTTP-level reply, including non-2xx,
// returns a response; only transport failures return an error.
func (e *executor) send(ctx context.Context, req *Request) (*http.Response, error) {
	httpReq, err := e.build(ctx, req)
	if err != nil {
		return nil, err
	}
	return e.client.Do(httpReq)
}

func (e *executor) build(ctx context.Context, req *Request) (*http.Request, error) {
	target := e.baseURL + req.Route.Path()
	if len(req.Params) > 0 {
		target += "?" + req.Params.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.Multipart != nil:
		encoded, ct, err := req.Multipart.encode()
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
		contentType = ct
	case req.Body != nil:
		body = bytes.NewReader(req.Body)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Route.Method(), target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("User-Agent", e.userAgent)
	if e.token != "" {
		httpReq.Header.Set("Authorization", e.token)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Reason != "" {
		httpReq.Header.Set("X-Audit-Log-Reason", encodeReason(req.Reason))
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	return httpReq, nil
}
