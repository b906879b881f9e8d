// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// validateRequest checks every documented parameter and the body of r.
// Coerced parameter values are stored in m.Params.
func (p *Provider) validateRequest(r *http.Request, m *Metadata) error {
	op := m.Operation
	var details []string

	m.Params = make(map[string]map[string]any)
	for _, param := range op.Parameters {
		where := fmt.Sprintf("%s parameter %q", param.In, param.Name)

		raw, present := rawValues(r, m, param)
		if !present {
			if param.Required {
				details = append(details, where+" is required")
			}
			continue
		}

		value, err := coerce(param, raw)
		if err != nil {
			details = append(details, fmt.Sprintf("%s: %v", where, err))
			continue
		}
		if param.schema != nil {
			if errs := check(param.schema, gojsonschema.NewGoLoader(value), where); len(errs) > 0 {
				details = append(details, errs...)
				continue
			}
		}

		if m.Params[param.In] == nil {
			m.Params[param.In] = make(map[string]any)
		}
		m.Params[param.In][param.Name] = value
	}

	if op.RequestBody != nil {
		bodyDetails, err := p.validateBody(r, op)
		if err != nil {
			return err
		}
		details = append(details, bodyDetails...)
	}

	if len(details) > 0 {
		return newRequestError(op, details)
	}
	return nil
}

func (p *Provider) validateBody(r *http.Request, op *Operation) ([]string, error) {
	body, err := readBody(r, p.opts.MaxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Name(), err)
	}

	if len(body) == 0 {
		if op.RequestBody.Required {
			return []string{"request body is required"}, nil
		}
		return nil, nil
	}

	contentType := r.Header.Get("Content-Type")
	media, ok := lookupMedia(op.RequestBody.Content, contentType)
	if !ok {
		return nil, fmt.Errorf("%w: %q for %s", ErrUnsupportedMediaType, contentType, op.Name())
	}
	if !media.HasSchema() || !isJSON(contentType) {
		return nil, nil
	}

	return check(media.schema, gojsonschema.NewBytesLoader(body), "request body"), nil
}

// validateResponse checks a buffered response against the documented
// responses of op.
func validateResponse(op *Operation, status int, header http.Header, body []byte) error {
	resp, ok := op.response(status)
	if !ok {
		return newResponseError(op, []string{fmt.Sprintf("status %d is not documented (documented: %s)",
			status, strings.Join(op.DocumentedStatuses(), ", "))})
	}
	if len(body) == 0 || len(resp.Content) == 0 {
		return nil
	}

	contentType := header.Get("Content-Type")
	media, ok := lookupMedia(resp.Content, contentType)
	if !ok {
		return newResponseError(op, []string{fmt.Sprintf("content type %q is not documented for status %d", contentType, status)})
	}
	if !media.HasSchema() || !isJSON(contentType) {
		return nil
	}

	if details := check(media.schema, gojsonschema.NewBytesLoader(body), "response body"); len(details) > 0 {
		return newResponseError(op, details)
	}
	return nil
}

func rawValues(r *http.Request, m *Metadata, param *Parameter) ([]string, bool) {
	switch param.In {
	case InPath:
		v, ok := m.PathParams[param.Name]
		return []string{v}, ok
	case InQuery:
		v, ok := r.URL.Query()[param.Name]
		return v, ok && len(v) > 0
	case InHeader:
		v := r.Header.Values(param.Name)
		return v, len(v) > 0
	case InCookie:
		c, err := r.Cookie(param.Name)
		if err != nil {
			return nil, false
		}
		return []string{c.Value}, true
	default:
		return nil, false
	}
}

// readBody buffers the request body and puts a replayable copy back on r.
// A non-positive limit disables the size check.
func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	reader := io.Reader(r.Body)
	if limit > 0 {
		reader = io.LimitReader(r.Body, limit+1)
	}

	data, err := io.ReadAll(reader)
	_ = r.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("error reading request body: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, ErrBodyTooLarge
	}

	r.Body = io.NopCloser(bytes.NewReader(data))
	return data, nil
}

// lookupMedia finds the documented media type for contentType, trying the
// exact type, then "type/*", then "*/*".
func lookupMedia(content map[string]*MediaType, contentType string) (*MediaType, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		if m, ok := content["*/*"]; ok {
			return m, true
		}
		return nil, false
	}

	candidates := []string{mediaType}
	if i := strings.IndexByte(mediaType, '/'); i > 0 {
		candidates = append(candidates, mediaType[:i]+"/*")
	}
	candidates = append(candidates, "*/*")

	for _, c := range candidates {
		if m, ok := content[c]; ok {
			return m, true
		}
	}
	return nil, false
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
