package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load reads a JSON mapping file. See Parse for the accepted shapes.
func Load(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a JSON mapping, keeping the document's key order. Three
// shapes are accepted:
//
//	{"5": ["1001", "1002"], "7": "1003"}            page -> map unit(s)
//	{"1001": 5, "1002": 5, "1003": 7}               map unit -> page
//	[{"page": 5, "map_units": ["1001", "1002"]}]    explicit entries
//
// In the object forms the value type decides the direction: strings and
// arrays are map units, numbers are pages. Repeated pages are merged. The
// result is validated.
func Parse(data []byte) (Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var m Mapping
	switch tok {
	case json.Delim('{'):
		m, err = parseObject(dec)
	case json.Delim('['):
		m, err = parseList(dec)
	default:
		return nil, fmt.Errorf("%w: expected a JSON object or array", ErrInvalid)
	}
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after mapping", ErrInvalid)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseObject(dec *json.Decoder) (Mapping, error) {
	var m Mapping
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrInvalid, key, err)
		}

		switch raw[0] {
		case '"', '[':
			page, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil {
				return nil, fmt.Errorf("%w: key %q is not a page number", ErrInvalid, key)
			}
			units, err := decodeUnits(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: page %d: %v", ErrInvalid, page, err)
			}
			m = m.Add(page, units...)
		default:
			var n json.Number
			if err := json.Unmarshal(raw, &n); err != nil {
				return nil, fmt.Errorf("%w: map unit %q: page must be a number", ErrInvalid, key)
			}
			page, err := strconv.Atoi(n.String())
			if err != nil {
				return nil, fmt.Errorf("%w: map unit %q: page %s is not an integer", ErrInvalid, key, n)
			}
			m = m.Add(page, key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return m, nil
}

// decodeUnits accepts a string or an array of strings and numbers.
func decodeUnits(raw json.RawMessage) ([]string, error) {
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return []string{s}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	units := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			units = append(units, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(item, &n); err != nil {
			return nil, fmt.Errorf("map unit %s is not a string or number", item)
		}
		units = append(units, n.String())
	}
	return units, nil
}

type listEntry struct {
	Page     int      `json:"page"`
	MapUnits []string `json:"map_units"`
}

func parseList(dec *json.Decoder) (Mapping, error) {
	var m Mapping
	for i := 0; dec.More(); i++ {
		var e listEntry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalid, i, err)
		}
		if len(e.MapUnits) == 0 {
			return nil, fmt.Errorf("%w: entry %d: no map units", ErrInvalid, i)
		}
		m = m.Add(e.Page, e.MapUnits...)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return m, nil
}

// ParseFlag parses a command-line mapping of the form "5=1001,1002".
func ParseFlag(s string) (Entry, error) {
	pageStr, units, ok := strings.Cut(s, "=")
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q: expected PAGE=MAPUNIT[,MAPUNIT...]", ErrInvalid, s)
	}
	page, err := strconv.Atoi(strings.TrimSpace(pageStr))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q: page is not a number", ErrInvalid, s)
	}

	var ids []string
	for _, id := range strings.Split(units, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	e := Entry{Page: page, MapUnits: ids}
	if err := (Mapping{e}).Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}
