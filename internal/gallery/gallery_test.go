// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gallery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/archive-network/internal/names"
	"github.com/pdiddy/archive-network/pkg/types"
)

func sampleGraph() types.Graph {
	return types.Graph{
		Nodes: []types.Node{
			{ID: 1, Name: "David Hilliard", Group: types.GroupTop, Degree: 3, TotalWeight: 14},
			{ID: 0, Name: "Fred Hampton", Group: types.GroupTop, Degree: 1, TotalWeight: 12},
			{ID: 2, Name: "Unidentified Man", Group: types.GroupDefault, Degree: 1, TotalWeight: 1},
			{ID: 3, Name: "Elaine Brown", Group: types.GroupDefault, Degree: 1, TotalWeight: 1},
		},
		Links: []types.Link{
			{Source: 0, Target: 1, Value: 12, Links: []string{"a"}},
			{Source: 2, Target: 1, Value: 1, Links: []string{}},
			{Source: 3, Target: 1, Value: 1, Links: []string{}},
		},
	}
}

func sampleRecords(t *testing.T) []types.EnrichedRecord {
	t.Helper()
	records, err := types.ParseEnrichedRecords([]byte(`[
		{"filename":"1.jpg","title":"Rally","date":"1969","processedNames":["Fred Hampton","David Hilliard"],"processedLinks":["a"]},
		{"filename":"2.jpg","title":"Office","description":"Desk","processedNames":["David Hilliard"],"processedLinks":[]},
		{"filename":"3.jpg","title":"Street","processedNames":[],"processedLinks":[]}
	]`))
	require.NoError(t, err)
	return records
}

func TestAttachMedia(t *testing.T) {
	members := AttachMedia(sampleGraph(), sampleRecords(t))
	require.Len(t, members, 4)

	assert.Equal(t, "David Hilliard", members[0].Name)
	assert.Equal(t, []types.MediaItem{
		{Filename: "1.jpg", Date: "1969", Title: "Rally"},
		{Filename: "2.jpg", Title: "Office", Description: "Desk"},
	}, members[0].Images)

	assert.Equal(t, []types.MediaItem{{Filename: "1.jpg", Date: "1969", Title: "Rally"}}, members[1].Images)
	assert.NotNil(t, members[3].Images)
	assert.Empty(t, members[3].Images)
}

func TestKeyMembers(t *testing.T) {
	members := AttachMedia(sampleGraph(), nil)

	tests := []struct {
		name string
		cfg  types.MembersConfig
		want []string
	}{
		{"default thresholds", types.MembersConfig{MinWeight: DefaultMinWeight, NameContains: DefaultNameContains}, []string{"David Hilliard", "Fred Hampton", "Unidentified Man"}},
		{"weight only", types.MembersConfig{MinWeight: 12}, []string{"David Hilliard"}},
		{"empty substring ignored", types.MembersConfig{MinWeight: 100, NameContains: []string{""}}, []string{}},
		{"everyone", types.MembersConfig{MinWeight: 0}, []string{"David Hilliard", "Fred Hampton", "Unidentified Man", "Elaine Brown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, m := range KeyMembers(members, tt.cfg) {
				got = append(got, m.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssociated(t *testing.T) {
	g := sampleGraph()

	hub, err := Associated(g, 1)
	require.NoError(t, err)
	got := []int{}
	for _, n := range hub {
		got = append(got, n.ID)
	}
	assert.Equal(t, []int{0, 2, 3}, got, "graph order")

	leaf, err := Associated(g, 3)
	require.NoError(t, err)
	require.Len(t, leaf, 1)
	assert.Equal(t, "David Hilliard", leaf[0].Name)

	_, err = Associated(g, 99)
	assert.True(t, errors.Is(err, types.ErrNodeNotFound))
}

func TestLookup(t *testing.T) {
	g := sampleGraph()
	table, err := names.Default()
	require.NoError(t, err)

	tests := []struct {
		ref    string
		table  *names.Table
		wantID int
		errNF  bool
	}{
		{"2", nil, 2, false},
		{" 0 ", nil, 0, false},
		{"fred hampton", nil, 0, false},
		{"Chief", table, 1, false},
		{"Chief", nil, 0, true},
		{"42", nil, 0, true},
		{"Nobody", table, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			n, err := Lookup(g, tt.ref, tt.table)
			if tt.errNF {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrNodeNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, n.ID)
		})
	}
}

func TestByGallery(t *testing.T) {
	records, err := types.ParseRecords([]byte(`[
		{"filename":"1.jpg","gallery":["Oakland","Chicago"]},
		{"filename":"2.jpg","gallery":"Chicago"},
		{"filename":"3.jpg","gallery":"Chicago Seven"},
		{"filename":"4.jpg"}
	]`))
	require.NoError(t, err)

	got := []string{}
	for _, rec := range ByGallery(records, "Chicago") {
		got = append(got, rec.Filename())
	}
	assert.Equal(t, []string{"1.jpg", "2.jpg"}, got)
	assert.Empty(t, ByGallery(records, "Paris"))
}
