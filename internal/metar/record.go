// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package metar decodes METAR records as delivered by the aviationweather.gov data API,
// derives the flight category and renders presentation-ready strings from them.
//
// Every function in this package is a pure transform over its inputs and is safe for
// concurrent use.
package metar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wneessen/waybar-metar/internal/vartype"
)

var (
	// ErrMalformedBatch is returned when an API payload is not a JSON array of METAR records.
	ErrMalformedBatch = errors.New("malformed METAR batch")

	// ErrMalformedRecord is returned when a single element of a batch is not a JSON object.
	ErrMalformedRecord = errors.New("malformed METAR record")
)

// WindDirection is the normalized wind direction. Numeric directions are kept as decimal
// digits, variable wind is represented by WindVariable.
type WindDirection string

// WindVariable is the sentinel for variable wind.
const WindVariable WindDirection = "VRB"

// Degrees returns the direction in degrees, if the direction is numeric.
func (d WindDirection) Degrees() (int, bool) {
	deg, err := strconv.Atoi(string(d))
	if err != nil {
		return 0, false
	}
	return deg, true
}

// IsVariable reports whether d is the variable wind sentinel.
func (d WindDirection) IsVariable() bool {
	return strings.EqualFold(string(d), string(WindVariable))
}

// CloudLayer is a single reported cloud layer.
type CloudLayer struct {
	// Cover is the coverage token, e.g. FEW, SCT, BKN, OVC, OVX or SKC.
	Cover vartype.VarString
	// Base is the layer base in feet above ground level.
	Base vartype.VarInt
}

// RawRecord is a single METAR record as received from the API. Every field is optional.
type RawRecord struct {
	StationID        vartype.VarString
	Name             vartype.VarString
	ReportType       vartype.VarString
	RawText          vartype.VarString
	Temperature      vartype.VarFloat64
	Dewpoint         vartype.VarFloat64
	Altimeter        vartype.VarFloat64
	SeaLevelPressure vartype.VarFloat64
	Latitude         vartype.VarFloat64
	Longitude        vartype.VarFloat64
	WindDirection    vartype.Variable[WindDirection]
	WindSpeed        vartype.VarInt
	WindGust         vartype.VarInt
	Elevation        vartype.VarInt
	ObservationTime  vartype.VarInt64
	Visibility       Visibility
	Clouds           []CloudLayer
}

// Batch is the list of records returned by a single API request.
type Batch []RawRecord

// DecodeBatch decodes a JSON API payload into a Batch. It fails with ErrMalformedBatch if the
// payload is not an array of objects. Fields of the individual records are decoded on a best
// effort basis and never fail the batch.
func DecodeBatch(data []byte) (Batch, error) {
	var batch Batch
	if err := batch.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return batch, nil
}

// UnmarshalJSON satisfies the json.Unmarshaler interface for Batch.
func (b *Batch) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBatch, err)
	}
	if items == nil {
		return fmt.Errorf("%w: payload is null", ErrMalformedBatch)
	}

	records := make(Batch, 0, len(items))
	for i, item := range items {
		var record RawRecord
		if err := record.UnmarshalJSON(item); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrMalformedBatch, i, err)
		}
		records = append(records, record)
	}
	*b = records
	return nil
}

// UnmarshalJSON satisfies the json.Unmarshaler interface for RawRecord. Only a payload that is
// not a JSON object fails; a field that is missing or carries an unexpected type is left unset.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if fields == nil {
		return fmt.Errorf("%w: record is null", ErrMalformedRecord)
	}

	*r = RawRecord{
		StationID:        decodeString(fields, "icaoId"),
		Name:             decodeString(fields, "name"),
		ReportType:       decodeString(fields, "metarType"),
		RawText:          decodeString(fields, "rawOb"),
		Temperature:      decodeField[float64](fields, "temp"),
		Dewpoint:         decodeField[float64](fields, "dewp"),
		Altimeter:        decodeField[float64](fields, "altim"),
		SeaLevelPressure: decodeField[float64](fields, "slp"),
		Latitude:         decodeField[float64](fields, "lat"),
		Longitude:        decodeField[float64](fields, "lon"),
		WindDirection:    decodeWindDirection(fields["wdir"]),
		WindSpeed:        decodeField[int](fields, "wspd"),
		WindGust:         decodeField[int](fields, "wgst"),
		Elevation:        decodeField[int](fields, "elev"),
		ObservationTime:  decodeField[int64](fields, "obsTime"),
		Clouds:           decodeClouds(fields["clouds"]),
	}
	// Visibility never returns an error, a mismatch leaves it unset
	_ = r.Visibility.UnmarshalJSON(fields["visib"])

	return nil
}

// decodeField decodes the named field into T. Missing, null or mismatched values yield an
// unset Variable.
func decodeField[T any](fields map[string]json.RawMessage, key string) vartype.Variable[T] {
	var field vartype.Variable[T]
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return field
	}
	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		return field
	}
	field.Set(val)
	return field
}

// decodeString works like decodeField but treats blank strings as absent.
func decodeString(fields map[string]json.RawMessage, key string) vartype.VarString {
	field := decodeField[string](fields, key)
	if val, ok := field.Get(); ok && strings.TrimSpace(val) == "" {
		field.Reset()
	}
	return field
}

// decodeWindDirection tries a string first, then an integer which is converted to its
// decimal representation.
func decodeWindDirection(raw json.RawMessage) vartype.Variable[WindDirection] {
	var dir vartype.Variable[WindDirection]
	if len(raw) == 0 || isNull(raw) {
		return dir
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		str = strings.ToUpper(strings.TrimSpace(str))
		if str != "" {
			dir.Set(WindDirection(str))
		}
		return dir
	}
	var deg int
	if err := json.Unmarshal(raw, &deg); err == nil {
		dir.Set(WindDirection(strconv.Itoa(deg)))
	}
	return dir
}

// decodeClouds decodes the cloud layer list. Entries that are not objects are skipped.
func decodeClouds(raw json.RawMessage) []CloudLayer {
	if len(raw) == 0 || isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	layers := make([]CloudLayer, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		layers = append(layers, CloudLayer{
			Cover: decodeString(fields, "cover"),
			Base:  decodeField[int](fields, "base"),
		})
	}
	return layers
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
