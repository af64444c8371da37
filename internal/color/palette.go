package color

// Named palette shared by the layers and the host overlays.
var (
	Purple     = MustHex("#903498")
	DarkBlue   = MustHex("#4040a0")
	Blue       = MustHex("#1f64ad")
	Turquoise  = MustHex("#0095ac")
	Green      = MustHex("#3bb273")
	LightGreen = MustHex("#90bc1a")
	Yellow     = MustHex("#fad12d")
	Orange     = MustHex("#f07c12")
	Red        = MustHex("#e15554")
	Black      = MustHex("#000000")
	White      = MustHex("#ffffff")
)

// EdgeDivisor darkens graph edges relative to their nodes.
const EdgeDivisor = 1.2

// HoverBoost brightens hovered nodes.
const HoverBoost = 1.2

// Selected is the colour of selected nodes.
var Selected = Red

// Named returns a palette colour by name.
func Named(name string) (RGB, bool) {
	c, ok := named[name]
	return c, ok
}

var named = map[string]RGB{
	"purple":     Purple,
	"darkBlue":   DarkBlue,
	"blue":       Blue,
	"turquoise":  Turquoise,
	"green":      Green,
	"lightGreen": LightGreen,
	"yellow":     Yellow,
	"orange":     Orange,
	"red":        Red,
	"black":      Black,
	"white":      White,
}
