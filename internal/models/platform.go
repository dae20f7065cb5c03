package models

// Platform identifies an upstream music service
type Platform string

const (
	PlatformKuwo    Platform = "kw"
	PlatformMigu    Platform = "mg"
	PlatformKugou   Platform = "kg"
	PlatformQQ      Platform = "tx"
	PlatformNetease Platform = "wy"
)

// PlatformAuto is the search selector that lets the aggregator pick a platform
const PlatformAuto Platform = "auto"

// String returns the wire value of the platform
func (p Platform) String() string {
	return string(p)
}

// DisplayName returns a human-readable service name, or the raw value for unknown platforms
func (p Platform) DisplayName() string {
	switch p {
	case PlatformKuwo:
		return "Kuwo Music"
	case PlatformMigu:
		return "Migu Music"
	case PlatformKugou:
		return "Kugou Music"
	case PlatformQQ:
		return "QQ Music"
	case PlatformNetease:
		return "NetEase Cloud Music"
	case PlatformAuto:
		return "automatic"
	default:
		return string(p)
	}
}
