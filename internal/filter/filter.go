// Package filter turns the recognized query parameters into an immutable
// value that the services and repositories compile into backend predicates.
package filter

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Flag is the tri-state normalization of a boolean query parameter:
// the parameter can be absent, present with value "1" (true), or present
// with any other value (false).
type Flag int8

const (
	Absent Flag = iota
	True
	False
)

// Bool reports the boolean meaning of a non-absent flag.
func (f Flag) Bool() bool {
	return f == True
}

const (
	SizeOriginal = "original"
	SizeRegular  = "regular"
	SizeSmall    = "small"
	SizeThumb    = "thumb"
)

const (
	minTags = 1
	maxTags = 4
)

// Filters holds every recognized parameter of one request. Unrecognized
// parameters are dropped at parse time; malformed ones degrade to their
// zero value instead of failing the request.
type Filters struct {
	Landscape  Flag
	NearSquare Flag

	BigSize   Flag
	MidSize   Flag
	SmallSize Flag

	BigRes   Flag
	MidRes   Flag
	SmallRes Flag

	// R18 switches bucket selection to the restricted set.
	R18 bool

	// Tags is the document-store tag filter, 1..4 entries or nil.
	Tags []string

	// Count caps the number of returned records, at least 1.
	Count int

	// JSON switches the response from redirect to the JSON projection.
	JSON bool

	// Size is one of the URL size variant names, or empty.
	Size string

	// Proxy is the raw proxy parameter; ProxySet distinguishes an empty
	// value from an absent parameter.
	Proxy    string
	ProxySet bool
}

// Parse reads the recognized parameters out of a query string.
func Parse(values url.Values) Filters {
	f := Filters{
		Landscape:  flagOf(values, "landscape"),
		NearSquare: flagOf(values, "near_square"),
		BigSize:    flagOf(values, "big_size"),
		MidSize:    flagOf(values, "mid_size"),
		SmallSize:  flagOf(values, "small_size"),
		BigRes:     flagOf(values, "big_res"),
		MidRes:     flagOf(values, "mid_res"),
		SmallRes:   flagOf(values, "small_res"),
		R18:        truthy(values, "r18"),
		JSON:       truthy(values, "json"),
		Tags:       parseTags(values.Get("tags")),
		Count:      parseCount(values.Get("count")),
	}

	switch size := values.Get("size"); size {
	case SizeOriginal, SizeRegular, SizeSmall, SizeThumb:
		f.Size = size
	}

	if _, ok := values["proxy"]; ok {
		f.Proxy = values.Get("proxy")
		f.ProxySet = true
	}

	return f
}

// Empty reports whether no predicate-producing flag is present, which puts
// the relational backend on the targeted random-id path.
func (f Filters) Empty() bool {
	return f.Landscape == Absent && f.NearSquare == Absent &&
		f.BigSize == Absent && f.MidSize == Absent && f.SmallSize == Absent &&
		f.BigRes == Absent && f.MidRes == Absent && f.SmallRes == Absent
}

func flagOf(values url.Values, key string) Flag {
	if _, ok := values[key]; !ok {
		return Absent
	}
	if values.Get(key) == "1" {
		return True
	}
	return False
}

// truthy treats a parameter as set when it is present with a non-empty
// value other than "0".
func truthy(values url.Values, key string) bool {
	if _, ok := values[key]; !ok {
		return false
	}
	v := values.Get(key)
	return v != "" && v != "0"
}

// parseTags accepts a JSON array of 1 to 4 strings; anything else means
// no tag restriction.
func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	if len(tags) < minTags || len(tags) > maxTags {
		return nil
	}
	return tags
}

func parseCount(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
