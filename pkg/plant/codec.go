package plant

import (
	"github.com/gnames/gnfmt"
)

// EncodeList serializes a list as JSON array text for storage. Empty lists
// encode to an empty string, which is stored as NULL.
func EncodeList(items []string) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	enc := gnfmt.GNjson{}
	res, err := enc.Encode(items)
	if err != nil {
		return "", err
	}
	return string(res), nil
}

// DecodeList deserializes JSON array text produced by EncodeList. Empty
// text decodes to a nil list.
func DecodeList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var res []string
	enc := gnfmt.GNjson{}
	if err := enc.Decode([]byte(s), &res); err != nil {
		return nil, err
	}
	return res, nil
}
