// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-bootstrap/internal/app"
)

// compose builds an application handler the way the server does.
func compose(t *testing.T, build func(a *app.App)) http.Handler {
	t.Helper()

	a := app.New()
	build(a)

	h, err := a.Handler()
	require.NoError(t, err)
	return h
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}
