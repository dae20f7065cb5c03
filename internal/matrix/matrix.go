// Package matrix holds the static platform/quality compatibility table.
//
// The table is request-shaping data: it decides whether a quality string is
// plausible for a platform before any network call is made. It is built at
// package initialisation and never mutated, so lookups are safe from any
// goroutine without synchronisation.
package matrix

import (
	"strings"

	"github.com/samber/lo"

	"github.com/Belphemur/SuperMusic/internal/models"
)

var platforms = []models.Platform{
	models.PlatformKuwo,
	models.PlatformMigu,
	models.PlatformKugou,
	models.PlatformQQ,
	models.PlatformNetease,
}

var qualities = []models.Quality{
	models.Quality128k,
	models.Quality320k,
	models.QualityFLAC,
	models.QualityFLAC24Bit,
	models.QualityHiRes,
	models.QualityAtmos,
	models.QualityAtmosPlus,
	models.QualityMaster,
}

var table = map[models.Platform][]models.Quality{
	models.PlatformKuwo: {
		models.Quality128k, models.Quality320k, models.QualityFLAC, models.QualityFLAC24Bit, models.QualityHiRes,
	},
	models.PlatformMigu: {
		models.Quality128k, models.Quality320k, models.QualityFLAC, models.QualityFLAC24Bit, models.QualityHiRes,
	},
	models.PlatformKugou: {
		models.Quality128k, models.Quality320k, models.QualityFLAC, models.QualityFLAC24Bit, models.QualityHiRes,
		models.QualityAtmos, models.QualityMaster,
	},
	models.PlatformQQ: {
		models.Quality128k, models.Quality320k, models.QualityFLAC, models.QualityFLAC24Bit, models.QualityHiRes,
		models.QualityAtmos, models.QualityAtmosPlus, models.QualityMaster,
	},
	models.PlatformNetease: {
		models.Quality128k, models.Quality320k, models.QualityFLAC, models.QualityFLAC24Bit, models.QualityHiRes,
		models.QualityAtmos, models.QualityMaster,
	},
}

// Platforms returns the download platforms in their canonical order
func Platforms() []models.Platform {
	return append([]models.Platform(nil), platforms...)
}

// Qualities returns every quality any platform supports, in ascending tier order
func Qualities() []models.Quality {
	return append([]models.Quality(nil), qualities...)
}

// IsPlatform reports whether p is a supported download platform
func IsPlatform(p models.Platform) bool {
	return lo.Contains(platforms, p)
}

// IsQuality reports whether q is a quality known to at least one platform
func IsQuality(q models.Quality) bool {
	return lo.Contains(qualities, q)
}

// QualitiesFor returns the ordered qualities supported by p.
// An unknown platform yields an empty slice.
func QualitiesFor(p models.Platform) []models.Quality {
	return append([]models.Quality(nil), table[p]...)
}

// Supports reports whether platform p can serve quality q
func Supports(p models.Platform, q models.Quality) bool {
	return lo.Contains(table[p], q)
}

// Strings converts typed values to plain strings
func Strings[T ~string](values []T) []string {
	return lo.Map(values, func(v T, _ int) string { return string(v) })
}

// Join renders values as a comma separated list for error messages
func Join[T ~string](values []T) string {
	return strings.Join(Strings(values), ", ")
}
