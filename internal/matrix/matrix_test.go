package matrix

import (
	"testing"

	"github.com/samber/lo"

	"github.com/Belphemur/SuperMusic/internal/models"
)

func TestSupports_MatchesTable(t *testing.T) {
	for _, p := range Platforms() {
		for _, q := range Qualities() {
			want := lo.Contains(table[p], q)
			if got := Supports(p, q); got != want {
				t.Errorf("Supports(%s, %s) = %v, want %v", p, q, got, want)
			}
		}
	}
}

func TestQualitiesFor(t *testing.T) {
	tests := []struct {
		platform models.Platform
		want     []models.Quality
	}{
		{models.PlatformKuwo, []models.Quality{"128k", "320k", "flac", "flac24bit", "hires"}},
		{models.PlatformMigu, []models.Quality{"128k", "320k", "flac", "flac24bit", "hires"}},
		{models.PlatformKugou, []models.Quality{"128k", "320k", "flac", "flac24bit", "hires", "atmos", "master"}},
		{models.PlatformQQ, []models.Quality{"128k", "320k", "flac", "flac24bit", "hires", "atmos", "atmos_plus", "master"}},
		{models.PlatformNetease, []models.Quality{"128k", "320k", "flac", "flac24bit", "hires", "atmos", "master"}},
		{models.Platform("xx"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			got := QualitiesFor(tt.platform)
			if len(got) != len(tt.want) {
				t.Fatalf("QualitiesFor(%s) = %v, want %v", tt.platform, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("QualitiesFor(%s)[%d] = %s, want %s", tt.platform, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEveryPlatformHasQualities(t *testing.T) {
	for _, p := range Platforms() {
		if len(QualitiesFor(p)) == 0 {
			t.Errorf("platform %s has no qualities", p)
		}
	}
}

func TestUnionEqualsGlobalSet(t *testing.T) {
	var union []models.Quality
	for _, p := range Platforms() {
		union = append(union, QualitiesFor(p)...)
	}
	union = lo.Uniq(union)

	if len(union) != len(Qualities()) {
		t.Fatalf("union has %d qualities, global set has %d", len(union), len(Qualities()))
	}
	for _, q := range Qualities() {
		if !lo.Contains(union, q) {
			t.Errorf("quality %s is not reachable from any platform", q)
		}
	}
}

func TestUnknownValues(t *testing.T) {
	if Supports("xx", models.Quality128k) {
		t.Error("unknown platform must not support anything")
	}
	if Supports(models.PlatformQQ, "999k") {
		t.Error("unknown quality must not be supported")
	}
	if IsPlatform("auto") {
		t.Error("auto is a search selector, not a download platform")
	}
	if !IsQuality(models.QualityAtmosPlus) {
		t.Error("atmos_plus should be a known quality")
	}
}

func TestQualitiesFor_ReturnsCopy(t *testing.T) {
	got := QualitiesFor(models.PlatformKuwo)
	got[0] = "tampered"
	if QualitiesFor(models.PlatformKuwo)[0] != models.Quality128k {
		t.Fatal("QualitiesFor must not expose the shared table")
	}
}

func TestJoin(t *testing.T) {
	if got := Join(QualitiesFor(models.PlatformKuwo)); got != "128k, 320k, flac, flac24bit, hires" {
		t.Errorf("Join() = %q", got)
	}
}
