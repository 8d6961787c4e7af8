package cmd

import (
	"reflect"
	"testing"

	"github.com/jfmyers9/bandsintown/pkg/bandsintown"
)

func TestParseKeyValues(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bandsintown.Params
		wantErr  bool
	}{
		{
			name:     "no arguments",
			args:     nil,
			expected: bandsintown.Params{},
		},
		{
			name:     "single values",
			args:     []string{"location=Boston, MA", "radius=10"},
			expected: bandsintown.Params{"location": "Boston, MA", "radius": "10"},
		},
		{
			name: "repeated key becomes a list",
			args: []string{"artists=Little Brother", "artists=Joe Scudda", "artists=Pete Rock"},
			expected: bandsintown.Params{
				"artists": []string{"Little Brother", "Joe Scudda", "Pete Rock"},
			},
		},
		{
			name:     "value may contain equals",
			args:     []string{"query=a=b"},
			expected: bandsintown.Params{"query": "a=b"},
		},
		{
			name:     "empty value",
			args:     []string{"date="},
			expected: bandsintown.Params{"date": ""},
		},
		{
			name:    "missing equals",
			args:    []string{"location"},
			wantErr: true,
		},
		{
			name:    "missing key",
			args:    []string{"=Boston"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := parseKeyValues(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got params %v", params)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(params, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, params)
			}
		})
	}
}

func TestParseKeyValues_Encode(t *testing.T) {
	params, err := parseKeyValues([]string{
		"artists=Little Brother",
		"artists=Joe Scudda",
		"location=Boston, MA",
		"radius=10",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	query, err := bandsintown.Encode(params, "ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "app_id=ID&artists%5B%5D=Little+Brother&artists%5B%5D=Joe+Scudda&format=json&location=Boston%2C+MA&radius=10"
	if query != expected {
		t.Errorf("expected %q, got %q", expected, query)
	}
}

func TestArtistRef(t *testing.T) {
	ref := artistRef([]string{"Pete Rock"}, "")
	if ref.Name != "Pete Rock" || ref.MBID != "" {
		t.Errorf("unexpected ref: %+v", ref)
	}

	ref = artistRef(nil, "abc-123")
	if ref.Name != "" || ref.MBID != "abc-123" {
		t.Errorf("unexpected ref: %+v", ref)
	}
}

func TestSearchParams(t *testing.T) {
	cmd := eventsSearchCmd
	t.Cleanup(func() {
		searchLocation, searchRadius, searchArtists = "", 0, nil
		searchDate, searchStartDate, searchEndDate = "", "", ""
		cmd.Flags().Lookup("radius").Changed = false
	})

	for _, arg := range [][2]string{
		{"location", "Boston, MA"},
		{"radius", "10"},
		{"artist", "Little Brother"},
		{"artist", "Joe Scudda"},
		{"start-date", "2026-09-01"},
		{"end-date", "2026-09-30"},
	} {
		if err := cmd.Flags().Set(arg[0], arg[1]); err != nil {
			t.Fatalf("failed to set --%s: %v", arg[0], err)
		}
	}

	params := searchParams(cmd)
	expected := bandsintown.Params{
		"location":   "Boston, MA",
		"radius":     10,
		"artists":    []string{"Little Brother", "Joe Scudda"},
		"start_date": "2026-09-01",
		"end_date":   "2026-09-30",
	}
	if !reflect.DeepEqual(params, expected) {
		t.Errorf("expected %v, got %v", expected, params)
	}

	query, err := bandsintown.Encode(params, "ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "app_id=ID&artists%5B%5D=Little+Brother&artists%5B%5D=Joe+Scudda&date=2026-09-01%2C2026-09-30&format=json&location=Boston%2C+MA&radius=10"; query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
}
