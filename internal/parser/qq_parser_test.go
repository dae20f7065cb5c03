package parser

import (
	"testing"

	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/testutil"
)

func TestQQTrackParser_ParseTracks(t *testing.T) {
	t.Parallel()
	payload := testutil.QQSearchJSONP("callback",
		testutil.SearchHit{ID: "003aAYrm3GE0Ac", Title: "稻香", Artist: "周杰伦", Album: "魔杰座"},
		testutil.SearchHit{ID: "0039MnYb0qxYhV", Title: "晴天", Artist: "周杰伦"},
		testutil.SearchHit{ID: "000xyz", Title: "Instrumental"},
	)

	tracks, err := NewQQTrackParser().ParseTracks([]byte(payload))
	if err != nil {
		t.Fatalf("ParseTracks failed: %v", err)
	}

	expected := []models.TrackRecord{
		{Title: "稻香", Artist: "周杰伦", Album: "魔杰座", SourcePlatform: models.PlatformQQ, ExternalID: "003aAYrm3GE0Ac"},
		{Title: "晴天", Artist: "周杰伦", Album: "", SourcePlatform: models.PlatformQQ, ExternalID: "0039MnYb0qxYhV"},
		{Title: "Instrumental", Artist: "", Album: "", SourcePlatform: models.PlatformQQ, ExternalID: "000xyz"},
	}
	if len(tracks) != len(expected) {
		t.Fatalf("Expected %d tracks, got %d", len(expected), len(tracks))
	}
	for i := range expected {
		if tracks[i] != expected[i] {
			t.Errorf("track %d = %+v, want %+v", i, tracks[i], expected[i])
		}
	}
}

func TestQQTrackParser_FirstSingerOnly(t *testing.T) {
	t.Parallel()
	payload := `cb({"data":{"song":{"list":[{"songmid":"m1","songname":"Duet","singer":[{"name":"A"},{"name":"B"}]}]}}})`

	tracks, err := NewQQTrackParser().ParseTracks([]byte(payload))
	if err != nil {
		t.Fatalf("ParseTracks failed: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Artist != "A" {
		t.Errorf("expected first singer A, got %+v", tracks)
	}
}

func TestQQTrackParser_MissingWrapper(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		payload string
	}{
		{name: "no song object", payload: testutil.QQEmptyJSONP("callback")},
		{name: "plain json without data", payload: `{"code":0}`},
		{name: "empty list", payload: `callback({"data":{"song":{"list":[]}}})`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tracks, err := NewQQTrackParser().ParseTracks([]byte(tt.payload))
			if err != nil {
				t.Fatalf("ParseTracks failed: %v", err)
			}
			if tracks == nil || len(tracks) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", tracks)
			}
		})
	}
}

func TestQQTrackParser_InvalidPayload(t *testing.T) {
	t.Parallel()
	if _, err := NewQQTrackParser().ParseTracks([]byte("callback(not json)")); err == nil {
		t.Error("expected an error for an invalid payload")
	}
}

func TestUnwrapJSONP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "callback", input: `callback({"a":1})`, expected: `{"a":1}`},
		{name: "whitespace and semicolon", input: "  jsonp1 ( {\"a\":1} );\n", expected: `{"a":1}`},
		{name: "plain object", input: ` {"a":1} `, expected: `{"a":1}`},
		{name: "plain array", input: `[1,2]`, expected: `[1,2]`},
		{name: "nested parentheses", input: `cb({"t":"(x)"})`, expected: `{"t":"(x)"}`},
		{name: "no parentheses", input: `garbage`, expected: `garbage`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := string(UnwrapJSONP([]byte(tt.input))); got != tt.expected {
				t.Errorf("UnwrapJSONP(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
