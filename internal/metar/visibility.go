// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package metar

import (
	"encoding/json"
	"strconv"
	"strings"
)

// VisibilityKind identifies the representation a Visibility was received in.
type VisibilityKind uint8

const (
	// VisibilityAbsent marks a visibility that was not reported.
	VisibilityAbsent VisibilityKind = iota
	// VisibilityText is a textual visibility such as "10+".
	VisibilityText
	// VisibilityInt is an integral number of statute miles.
	VisibilityInt
	// VisibilityFloat is a fractional number of statute miles.
	VisibilityFloat
)

// Visibility is the reported prevailing visibility in statute miles. The API delivers it as a
// string, an integer or a float and the original representation is kept, so that values like
// "10+" round-trip exactly. The zero value is an absent visibility.
type Visibility struct {
	kind    VisibilityKind
	text    string
	integer int
	float   float64
}

// TextVisibility returns a Visibility holding the textual value s.
func TextVisibility(s string) Visibility {
	return Visibility{kind: VisibilityText, text: s}
}

// IntVisibility returns a Visibility holding the integer value n.
func IntVisibility(n int) Visibility {
	return Visibility{kind: VisibilityInt, integer: n}
}

// FloatVisibility returns a Visibility holding the float value f.
func FloatVisibility(f float64) Visibility {
	return Visibility{kind: VisibilityFloat, float: f}
}

// Kind returns the representation of the visibility.
func (v Visibility) Kind() VisibilityKind {
	return v.kind
}

// IsSet reports whether a visibility was reported.
func (v Visibility) IsSet() bool {
	return v.kind != VisibilityAbsent
}

// String returns the canonical text of the visibility without unit. An absent visibility
// returns an empty string.
func (v Visibility) String() string {
	switch v.kind {
	case VisibilityText:
		return v.text
	case VisibilityInt:
		return strconv.Itoa(v.integer)
	case VisibilityFloat:
		return strconv.FormatFloat(v.float, 'f', -1, 64)
	default:
		return ""
	}
}

// Miles returns the numeric visibility in statute miles. A trailing "+" is ignored. The
// boolean is false if the visibility is absent or its text is not a number.
func (v Visibility) Miles() (float64, bool) {
	switch v.kind {
	case VisibilityText:
		text := strings.TrimSuffix(strings.TrimSpace(v.text), "+")
		miles, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
		return miles, true
	case VisibilityInt:
		return float64(v.integer), true
	case VisibilityFloat:
		return v.float, true
	default:
		return 0, false
	}
}

// UnmarshalJSON satisfies the json.Unmarshaler interface. It tries a string, an integer and
// a float, in that order. Blank strings and values matching none of them leave the
// visibility absent, it never returns an error.
func (v *Visibility) UnmarshalJSON(data []byte) error {
	*v = Visibility{}
	if len(data) == 0 || isNull(data) {
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		if strings.TrimSpace(text) != "" {
			*v = TextVisibility(text)
		}
		return nil
	}
	var integer int
	if err := json.Unmarshal(data, &integer); err == nil {
		*v = IntVisibility(integer)
		return nil
	}
	var float float64
	if err := json.Unmarshal(data, &float); err == nil {
		*v = FloatVisibility(float)
	}
	return nil
}
