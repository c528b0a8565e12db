package config

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

var coordinateType = reflect.TypeOf(domain.Coordinate{})

// Decode copies a loosely typed map (YAML document, MCP tool arguments)
// into out, turning [r, c] pairs into domain.Coordinate.
func Decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(coordinateHook, intHook),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// DecodeRequest decodes a comparison request from a loosely typed map.
func DecodeRequest(input map[string]any) (domain.ComparisonRequest, error) {
	var req domain.ComparisonRequest
	if err := Decode(input, &req); err != nil {
		return req, &domain.InvalidRequestError{Field: "request", Reason: err.Error()}
	}
	return req, nil
}

func coordinateHook(from, to reflect.Type, data any) (any, error) {
	if to != coordinateType {
		return data, nil
	}
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return data, nil
	}
	if v.Len() != 2 {
		return nil, fmt.Errorf("coordinate must be [row, col], got %d values", v.Len())
	}
	row, err := toInt(v.Index(0).Interface())
	if err != nil {
		return nil, fmt.Errorf("coordinate row: %w", err)
	}
	col, err := toInt(v.Index(1).Interface())
	if err != nil {
		return nil, fmt.Errorf("coordinate col: %w", err)
	}
	return domain.Coordinate{Row: row, Col: col}, nil
}

// intHook rejects fractional and out-of-range numbers bound for int fields
// instead of letting them truncate.
func intHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	switch data.(type) {
	case float64, float32, uint64, json.Number:
		return toInt(data)
	}
	return data, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, fmt.Errorf("%d is out of range", n)
		}
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%d is out of range", n)
		}
		return int(n), nil
	case float32:
		return toInt(float64(n))
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		if n < math.MinInt || n >= math.MaxInt {
			return 0, fmt.Errorf("%v is out of range", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, err
		}
		return toInt(i)
	}
	return 0, fmt.Errorf("unexpected %T", v)
}

// DefaultGridSize is the width and height of a request that names neither.
const DefaultGridSize = 40

// DefaultAlgorithms are compared when a request names none.
var DefaultAlgorithms = []string{"Dijkstra", "AStar"}

// DecodeRequestDefaults is DecodeRequest with the defaults of the web API
// filled in: a 40x40 grid searched from the top-left to the bottom-right
// corner by Dijkstra and A*.
func DecodeRequestDefaults(input map[string]any) (domain.ComparisonRequest, error) {
	req := domain.ComparisonRequest{Width: DefaultGridSize, Height: DefaultGridSize}
	if err := Decode(input, &req); err != nil {
		return req, &domain.InvalidRequestError{Field: "request", Reason: err.Error()}
	}
	if _, ok := input["end"]; !ok {
		req.End = domain.C(req.Height-1, req.Width-1)
	}
	if _, ok := input["algorithms"]; !ok {
		req.Algorithms = append([]string(nil), DefaultAlgorithms...)
	}
	return req, nil
}
