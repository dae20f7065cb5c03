package models

// Quality represents an audio encoding/bitrate tier
type Quality string

const (
	Quality128k      Quality = "128k"
	Quality320k      Quality = "320k"
	QualityFLAC      Quality = "flac"
	QualityFLAC24Bit Quality = "flac24bit"
	QualityHiRes     Quality = "hires"
	QualityAtmos     Quality = "atmos"
	QualityAtmosPlus Quality = "atmos_plus"
	QualityMaster    Quality = "master"
)

// String returns the wire value of the quality
func (q Quality) String() string {
	return string(q)
}

// Extension returns the file extension used for audio of this quality.
// Lossy tiers are mp3, every lossless tier is flac, unknown values fall back to mp3.
func (q Quality) Extension() string {
	switch q {
	case Quality128k, Quality320k:
		return "mp3"
	case QualityFLAC, QualityFLAC24Bit, QualityHiRes, QualityAtmos, QualityAtmosPlus, QualityMaster:
		return "flac"
	default:
		return "mp3"
	}
}

// QualityLadder lists every quality from best to worst
var QualityLadder = []Quality{
	QualityMaster,
	QualityAtmosPlus,
	QualityAtmos,
	QualityHiRes,
	QualityFLAC24Bit,
	QualityFLAC,
	Quality320k,
	Quality128k,
}

// LadderFrom returns the qualities from q down to the lowest tier.
// An unknown q starts at the bottom of the ladder.
func LadderFrom(q Quality) []Quality {
	for i, candidate := range QualityLadder {
		if candidate == q {
			return QualityLadder[i:]
		}
	}
	return QualityLadder[len(QualityLadder)-1:]
}
