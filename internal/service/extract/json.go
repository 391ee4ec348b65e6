package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
)

const confirmedKey = "booking_confirmed"

// parseJSON finds the first well-formed object starting at a '{'. Objects
// without a truthy booking_confirmed are not payloads. If braces exist but
// no object decodes, the input is reported as malformed.
func parseJSON(raw string) (*match, error) {
	if !strings.Contains(raw, "{") || !strings.Contains(raw, "}") {
		return nil, nil
	}

	var firstErr error
	for offset := 0; offset < len(raw); {
		i := strings.IndexByte(raw[offset:], '{')
		if i < 0 {
			break
		}
		start := offset + i

		obj, end, err := decodeObject(raw[start:])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			offset = start + 1
			continue
		}

		if !truthy(obj[confirmedKey]) {
			return nil, nil
		}
		return &match{
			start: start,
			end:   start + end,
			payload: core.BookingPayload{
				Name:      stringField(obj, "name"),
				Service:   stringField(obj, "service"),
				Topic:     stringField(obj, "topic"),
				Contact:   stringField(obj, "contact"),
				Confirmed: true,
			},
		}, nil
	}

	if firstErr != nil {
		return nil, fmt.Errorf("decode json payload: %w", firstErr)
	}
	return nil, nil
}

// decodeObject reads one JSON object from the head of s and returns the
// byte length it consumed.
func decodeObject(s string) (map[string]any, int, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, 0, err
	}
	return obj, int(dec.InputOffset()), nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1", "да":
			return true
		}
	}
	return false
}

// stringField flattens scalar values; nested values count as absent.
func stringField(obj map[string]any, key string) string {
	switch t := obj[key].(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
