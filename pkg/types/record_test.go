// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, doc string) Record {
	t.Helper()
	rec, err := NewRecord([]byte(doc))
	require.NoError(t, err)
	return rec
}

func TestRecordRepeatedKeyLastWins(t *testing.T) {
	rec := record(t, `{"title":"Fred Hampton","title":"David Hilliard","link":"a","link":"b"}`)

	text, ok := rec.Text(FieldTitle)
	require.True(t, ok)
	assert.Equal(t, "David Hilliard", text)
	assert.Equal(t, "David Hilliard", rec.Title())
	assert.Equal(t, "b", rec.Link())
}

func TestRecordLink(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{`{"link":"https://example.org/1"}`, "https://example.org/1"},
		{`{"link":""}`, ""},
		{`{"link":7}`, "7"},
		{`{"link":2.5}`, "2.5"},
		{`{"link":0}`, ""},
		{`{"link":true}`, "true"},
		{`{"link":false}`, ""},
		{`{"link":null}`, ""},
		{`{"link":{"href":"x"}}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			assert.Equal(t, tt.want, record(t, tt.doc).Link())
		})
	}
}

func TestRecordText(t *testing.T) {
	rec := record(t, `{"names":["Fred Hampton","Bobby Rush"],"title":"","description":42}`)

	text, ok := rec.Text(FieldNames)
	assert.True(t, ok)
	assert.Equal(t, "Fred Hampton Bobby Rush", text)

	_, ok = rec.Text(FieldTitle)
	assert.False(t, ok, "empty string")
	_, ok = rec.Text(FieldDescription)
	assert.False(t, ok, "number")
	_, ok = rec.Text("caption")
	assert.False(t, ok, "absent")
}

func TestParseRecordsRejectsNonObjects(t *testing.T) {
	for _, doc := range []string{`{"title":"x"}`, `[{"title":"x"},"y"]`, `[1]`, `nope`} {
		_, err := ParseRecords([]byte(doc))
		assert.True(t, errors.Is(err, ErrMalformedInput), doc)
	}

	records, err := ParseRecords([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}
