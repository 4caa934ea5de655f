package wtss

import (
	"fmt"
	"strings"
	"time"
)

// Document is a decoded JSON response, returned unchanged to the caller.
// Documents are transient: produced per call, never cached, owned by the
// caller after return.
type Document map[string]any

// CoverageList is the list_coverages response document. It carries a
// "coverages" key with the available coverage names.
type CoverageList Document

// CoverageDescription is the describe_coverage response document. Its
// structure is service-defined and not validated by the client.
type CoverageDescription Document

// TimeSeriesDocument is the time_series response document. It carries a
// "result" object with a "timeline" of date strings and an "attributes"
// list of {attribute, values} records.
type TimeSeriesDocument Document

// Names returns the coverage names listed in the document.
func (d CoverageList) Names() ([]string, error) {
	raw, ok := d["coverages"].([]any)
	if !ok {
		return nil, newError(KindSchema, "document has no coverages list")
	}
	names := make([]string, 0, len(raw))
	for _, entry := range raw {
		name, ok := entry.(string)
		if !ok {
			return nil, newError(KindSchema, fmt.Sprintf("coverages entry %v is not a string", entry))
		}
		names = append(names, name)
	}
	return names, nil
}

// Timeline returns the dates of a time_series response, parsed with the
// given strftime-style pattern (e.g. "%Y-%m-%d") and in the same order as
// the document. A pattern containing no '%' is used as a Go time layout
// directly.
func Timeline(doc TimeSeriesDocument, format string) ([]time.Time, error) {
	entries, err := resultList(doc, "timeline")
	if err != nil {
		return nil, err
	}

	layout, err := layoutFromStrftime(format)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		s, ok := entry.(string)
		if !ok {
			return nil, newError(KindSchema, fmt.Sprintf("timeline entry %v is not a string", entry))
		}
		t, err := time.Parse(layout, s)
		if err != nil {
			return nil, wrapError(KindParse, fmt.Sprintf("timeline entry %q does not match format %q", s, format), err)
		}
		dates = append(dates, t)
	}
	return dates, nil
}

// Values returns the time series values for the given attribute from a
// time_series response. Records are scanned in document order and the
// first match wins.
func Values(doc TimeSeriesDocument, attrName string) ([]float64, error) {
	records, err := resultList(doc, "attributes")
	if err != nil {
		return nil, err
	}

	for _, entry := range records {
		rec, ok := entry.(map[string]any)
		if !ok {
			return nil, newError(KindSchema, fmt.Sprintf("attributes entry %v is not an object", entry))
		}
		if name, _ := rec["attribute"].(string); name != attrName {
			continue
		}
		raw, ok := rec["values"].([]any)
		if !ok {
			return nil, newError(KindSchema, fmt.Sprintf("attribute %q has no values list", attrName))
		}
		values := make([]float64, 0, len(raw))
		for _, v := range raw {
			n, ok := v.(float64)
			if !ok {
				return nil, newError(KindSchema, fmt.Sprintf("value %v of attribute %q is not a number", v, attrName))
			}
			values = append(values, n)
		}
		return values, nil
	}

	return nil, newError(KindNotFound, fmt.Sprintf("Time series for attribute '%s' not found!", attrName))
}

// resultList digs doc.result.<key> out of a time_series document.
func resultList(doc TimeSeriesDocument, key string) ([]any, error) {
	result, ok := doc["result"].(map[string]any)
	if !ok {
		return nil, newError(KindSchema, "document has no result object")
	}
	list, ok := result[key].([]any)
	if !ok {
		return nil, newError(KindSchema, fmt.Sprintf("result has no %s list", key))
	}
	return list, nil
}

// strftimeLayouts maps the strftime directives the service's date formats
// use onto Go reference-time layout fragments.
var strftimeLayouts = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'M': "04",
	'S': "05",
	'j': "002",
	'b': "Jan",
	'B': "January",
	'%': "%",
}

// layoutFromStrftime translates a strftime-style pattern to a Go time
// layout. Patterns without any '%' are assumed to already be Go layouts.
func layoutFromStrftime(format string) (string, error) {
	if !strings.ContainsRune(format, '%') {
		return format, nil
	}

	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			sb.WriteByte(format[i])
			continue
		}
		i++
		if i >= len(format) {
			return "", newError(KindParse, fmt.Sprintf("date format %q ends with a bare %%", format))
		}
		fragment, ok := strftimeLayouts[format[i]]
		if !ok {
			return "", newError(KindParse, fmt.Sprintf("date format %q uses unsupported directive %%%c", format, format[i]))
		}
		sb.WriteString(fragment)
	}
	return sb.String(), nil
}
