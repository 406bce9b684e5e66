// Package color describes the color spaces a pixel buffer can be tagged with
// and converts channel values between them.
//
// Every space carries an implicit alpha channel in addition to its color
// channels. Values are normalized to [0,1]. Spaces flagged as integer hold
// values quantized to 8 bits; float spaces keep full precision.
package color

// Space identifies the channel layout and semantics of a pixel buffer.
// Two buffers are compatible only if their spaces are equal.
type Space uint8

const (
	// SRGB is the native space: three gamma-encoded channels with 8-bit
	// integer precision.
	SRGB Space = iota
	// LinearRGB holds three linear-light float channels.
	LinearRGB
	// CMYK holds four device-CMYK float channels.
	CMYK
	// Alpha holds no color channels, only alpha.
	Alpha

	spaceCount
)

// MaxChannels is the largest channel total of any space, alpha included.
const MaxChannels = 5

// SpaceInfo describes a color space.
type SpaceInfo struct {
	Name     string
	Channels int  // color channels, alpha excluded
	Integer  bool // values are quantized to 8 bits
	RGB      bool // channels are red, green, blue
}

var spaceInfo = [spaceCount]SpaceInfo{
	SRGB:      {Name: "sRGB", Channels: 3, Integer: true, RGB: true},
	LinearRGB: {Name: "linearRGB", Channels: 3, RGB: true},
	CMYK:      {Name: "CMYK", Channels: 4},
	Alpha:     {Name: "alpha", Channels: 0, Integer: true},
}

// Info returns the descriptor of the space. Unknown spaces describe sRGB.
func (s Space) Info() SpaceInfo {
	if s >= spaceCount {
		return spaceInfo[SRGB]
	}
	return spaceInfo[s]
}

// Channels returns the number of color channels, alpha excluded.
func (s Space) Channels() int { return s.Info().Channels }

// Total returns the number of stored channels including alpha.
func (s Space) Total() int { return s.Info().Channels + 1 }

// IsInteger reports whether values are quantized to 8 bits.
func (s Space) IsInteger() bool { return s.Info().Integer }

// IsRGB reports whether the color channels are red, green and blue.
func (s Space) IsRGB() bool { return s.Info().RGB }

// IsValid reports whether s is a known space.
func (s Space) IsValid() bool { return s < spaceCount }

// String returns the space name.
func (s Space) String() string {
	if !s.IsValid() {
		return "unknown"
	}
	return spaceInfo[s].Name
}
