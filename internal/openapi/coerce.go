// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package openapi

import (
	"fmt"
	"strconv"
	"strings"
)

// coerce converts raw parameter values into the JSON types the schema
// expects. Arrays accept repeated values or one comma-separated value.
func coerce(p *Parameter, raw []string) (any, error) {
	if p.Type == "array" {
		if len(raw) == 1 && strings.Contains(raw[0], ",") {
			raw = strings.Split(raw[0], ",")
		}
		items := make([]any, 0, len(raw))
		for _, v := range raw {
			item, err := coerceScalar(p.ItemType, v)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}

	return coerceScalar(p.Type, raw[0])
}

func coerceScalar(typ, raw string) (any, error) {
	switch typ {
	case "integer":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected integer, got %q", raw)
		}
		return v, nil
	case "number":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expected number, got %q", raw)
		}
		return v, nil
	case "boolean":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected boolean, got %q", raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}
