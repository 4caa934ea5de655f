package wtss

import "strings"

// Attributes selects the coverage attributes requested for a time series.
// It is a sealed two-variant type: AttributeList joins its elements with a
// comma for transmission, AttributeString is sent verbatim and the caller
// owns its comma-separated formatting.
type Attributes interface {
	// queryValue resolves the variant to the comma-separated wire form.
	queryValue() (string, error)
}

// AttributeList is an ordered list of attribute names.
type AttributeList []string

// AttributeString is a pre-joined comma-separated attribute list.
type AttributeString string

func (a AttributeList) queryValue() (string, error) {
	if len(a) == 0 {
		return "", invalidArgument("Missing coverage attributes.")
	}
	return strings.Join(a, ","), nil
}

func (a AttributeString) queryValue() (string, error) {
	if a == "" {
		return "", invalidArgument("Missing coverage attributes.")
	}
	return string(a), nil
}
