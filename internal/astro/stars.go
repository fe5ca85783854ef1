package astro

import "strings"

// Star is a cataloged fixed star with J2000 equatorial coordinates.
type Star struct {
	Name   string  // IAU common name
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)
	Mag    float64 // Apparent visual magnitude
}

// brightStars holds the stars commonly used in fixed-star astrocartography,
// brightest first. Positions are J2000, Yale Bright Star Catalog values.
var brightStars = []Star{
	{"Sirius", 101.287, -16.716, -1.46},
	{"Canopus", 95.988, -52.696, -0.74},
	{"Arcturus", 213.915, 19.182, -0.05},
	{"Vega", 279.235, 38.784, 0.03},
	{"Capella", 79.172, 45.998, 0.08},
	{"Rigel", 78.634, -8.202, 0.13},
	{"Procyon", 114.826, 5.225, 0.34},
	{"Achernar", 24.429, -57.237, 0.46},
	{"Betelgeuse", 88.793, 7.407, 0.50},
	{"Altair", 297.696, 8.868, 0.76},
	{"Aldebaran", 68.980, 16.509, 0.85},
	{"Antares", 247.352, -26.432, 0.96},
	{"Spica", 201.298, -11.161, 0.97},
	{"Pollux", 116.329, 28.026, 1.14},
	{"Fomalhaut", 344.413, -29.622, 1.16},
	{"Deneb", 310.358, 45.280, 1.25},
	{"Regulus", 152.093, 11.967, 1.35},
	{"Castor", 113.650, 31.889, 1.58},
	{"Polaris", 37.954, 89.264, 2.02},
	{"Algol", 47.042, 40.957, 2.12},
	{"Rasalhague", 263.734, 12.560, 2.08},
	{"Alphecca", 233.672, 26.715, 2.23},
	{"Scheat", 345.944, 28.083, 2.42},
	{"Alcyone", 56.871, 24.105, 2.87},
}

// BrightStars returns a copy of the built-in fixed-star catalog.
func BrightStars() []Star {
	out := make([]Star, len(brightStars))
	copy(out, brightStars)
	return out
}

// LookupStar finds a cataloged star by name, case-insensitively.
func LookupStar(name string) (Star, bool) {
	for _, s := range brightStars {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Star{}, false
}
