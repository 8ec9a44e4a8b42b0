package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		in      Page
		want    Page
		wantErr bool
	}{
		{Page{Limit: 10}, Page{Limit: 10}, false},
		{Page{Limit: 2, Offset: 4}, Page{Limit: 2, Offset: 4}, false},
		{Page{Limit: 5000}, Page{Limit: MaxLimit}, false},
		{Page{Limit: 0}, Page{}, true},
		{Page{Limit: -3}, Page{}, true},
		{Page{Limit: 10, Offset: -1}, Page{}, true},
	}

	for _, tt := range tests {
		got, err := tt.in.Normalize()
		if tt.wantErr {
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr, "Normalize(%+v)", tt.in)
			continue
		}
		require.NoError(t, err, "Normalize(%+v)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestSearchPattern(t *testing.T) {
	tests := []struct {
		term    string
		want    string
		applies bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"APPLE", "%apple%", true},
		{"ČOKOLADA", "%čokolada%", true},
		{"50%", `%50\%%`, true},
		{"a_b", `%a\_b%`, true},
	}

	for _, tt := range tests {
		got, ok := Search{Term: tt.term}.Pattern()
		assert.Equal(t, tt.applies, ok, "Pattern(%q)", tt.term)
		assert.Equal(t, tt.want, got, "Pattern(%q)", tt.term)
	}
}

func TestParseID(t *testing.T) {
	_, err := ParseID("id", "0b8e7a4c-3a52-4c69-9b0e-4a0f4f7c1f11")
	assert.NoError(t, err)

	_, err = ParseID("list_id", "42")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "list_id")
}
