// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Field names recognized on input records.
const (
	FieldNames       = "names"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLink        = "link"
	FieldFilename    = "filename"
	FieldDate        = "date"
	FieldGallery     = "gallery"

	fieldProcessedNames = "processedNames"
	fieldProcessedLinks = "processedLinks"
)

// DefaultSearchFields lists the record fields scanned for names when the
// configuration does not override them.
var DefaultSearchFields = []string{FieldNames, FieldTitle, FieldDescription}

// Record is one captioned archive item. It keeps the source JSON object
// verbatim so fields the pipeline does not interpret survive into the
// enriched output unchanged and in their original order.
type Record struct {
	raw []byte
}

// NewRecord wraps a JSON object. It returns ErrMalformedInput when raw is
// not a JSON object.
func NewRecord(raw []byte) (Record, error) {
	if !gjson.ValidBytes(raw) {
		return Record{}, fmt.Errorf("%w: record is not valid JSON", ErrMalformedInput)
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return Record{}, fmt.Errorf("%w: record is not an object", ErrMalformedInput)
	}
	return Record{raw: bytes.Clone(raw)}, nil
}

// ParseRecords decodes a document that must be a JSON array of objects.
func ParseRecords(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedInput)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: top-level value must be a list of records", ErrMalformedInput)
	}

	records := []Record{}
	var parseErr error
	root.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			parseErr = fmt.Errorf("%w: entry %d is not an object", ErrMalformedInput, len(records))
			return false
		}
		records = append(records, Record{raw: []byte(value.Raw)})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return records, nil
}

// Raw returns the record's JSON object.
func (r Record) Raw() []byte {
	return r.raw
}

// field looks up a top-level key by exact name. gjson paths give '.', '*'
// and '?' special meaning, so keys are compared directly. When a key is
// repeated the last value wins, as in JSON.parse.
func (r Record) field(name string) gjson.Result {
	var found gjson.Result
	gjson.ParseBytes(r.raw).ForEach(func(key, value gjson.Result) bool {
		if key.Str == name {
			found = value
		}
		return true
	})
	return found
}

// Text returns the searchable text of a field. A string is returned as-is,
// an array has its elements joined with a single space. Any other kind,
// or an absent field, yields ok == false.
func (r Record) Text(name string) (text string, ok bool) {
	v := r.field(name)
	switch {
	case v.Type == gjson.String:
		return v.Str, v.Str != ""
	case v.IsArray():
		parts := []string{}
		for _, el := range v.Array() {
			parts = append(parts, el.String())
		}
		joined := strings.Join(parts, " ")
		return joined, joined != ""
	default:
		return "", false
	}
}

func (r Record) stringField(name string) string {
	v := r.field(name)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// Title returns the record title, or "".
func (r Record) Title() string { return r.stringField(FieldTitle) }

// Description returns the record description, or "".
func (r Record) Description() string { return r.stringField(FieldDescription) }

// Link returns the record's outbound link, or "". A non-zero number or
// true is kept in its JSON text form; false, 0, null, objects and arrays
// yield "".
func (r Record) Link() string {
	v := r.field(FieldLink)
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		if v.Num == 0 {
			return ""
		}
		return v.Raw
	case gjson.True:
		return v.Raw
	default:
		return ""
	}
}

// Filename returns the media filename, or "".
func (r Record) Filename() string { return r.stringField(FieldFilename) }

// Date returns the free-form date string, or "".
func (r Record) Date() string { return r.stringField(FieldDate) }

// Galleries returns the gallery names a media item belongs to. The field
// may be a single string or a list.
func (r Record) Galleries() []string {
	v := r.field(FieldGallery)
	switch {
	case v.Type == gjson.String:
		return []string{v.Str}
	case v.IsArray():
		var out []string
		for _, el := range v.Array() {
			if el.Type == gjson.String {
				out = append(out, el.Str)
			}
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON returns the source object unchanged.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("{}"), nil
	}
	return r.raw, nil
}

// UnmarshalJSON accepts any JSON object.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := NewRecord(data)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// EnrichedRecord is a Record with the canonical names found in its text and
// the links that support any edge it contributes.
type EnrichedRecord struct {
	Record

	// ProcessedNames holds canonical names, unique, in order of first
	// appearance in the searched text.
	ProcessedNames []string

	// ProcessedLinks holds the record's link, or nothing.
	ProcessedLinks []string
}

// ParseEnrichedRecords decodes a processed_data document.
func ParseEnrichedRecords(data []byte) ([]EnrichedRecord, error) {
	records, err := ParseRecords(data)
	if err != nil {
		return nil, err
	}
	out := make([]EnrichedRecord, len(records))
	for i, rec := range records {
		out[i] = enrichedFromRecord(rec)
	}
	return out, nil
}

func enrichedFromRecord(rec Record) EnrichedRecord {
	return EnrichedRecord{
		Record:         rec,
		ProcessedNames: stringArray(rec.field(fieldProcessedNames)),
		ProcessedLinks: stringArray(rec.field(fieldProcessedLinks)),
	}
}

func stringArray(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, el := range v.Array() {
		if el.Type == gjson.String {
			out = append(out, el.Str)
		}
	}
	return out
}

// MarshalJSON writes the source object with processedNames and
// processedLinks set. Existing keys of the same name are replaced in place;
// otherwise the keys are appended.
func (e EnrichedRecord) MarshalJSON() ([]byte, error) {
	raw, err := e.Record.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out := bytes.Clone(raw)

	for _, kv := range []struct {
		key    string
		values []string
	}{
		{fieldProcessedNames, e.ProcessedNames},
		{fieldProcessedLinks, e.ProcessedLinks},
	} {
		value, err := marshalCompact(nonNil(kv.values))
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, kv.key, value)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", kv.key, err)
		}
	}
	return out, nil
}

// UnmarshalJSON reads a record previously written by MarshalJSON.
func (e *EnrichedRecord) UnmarshalJSON(data []byte) error {
	rec, err := NewRecord(data)
	if err != nil {
		return err
	}
	*e = enrichedFromRecord(rec)
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// marshalCompact encodes v without HTML escaping so captions containing
// '&' or '<' round-trip byte for byte.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
