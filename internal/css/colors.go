package css

import "strings"

// shortenHex lowercases a hex color and folds #rrggbb to #rgb when each
// channel repeats its nibble. Non-color hash tokens (selectors, odd
// lengths) pass through untouched.
func shortenHex(hash string, names bool) string {
	body := hash[1:]
	if !isHexBody(body) {
		return hash
	}
	body = strings.ToLower(body)
	if len(body) == 6 && body[0] == body[1] && body[2] == body[3] && body[4] == body[5] {
		body = string([]byte{body[0], body[2], body[4]})
	}
	hex := "#" + body
	if names {
		if name, ok := hexToName[hex]; ok && len(name) < len(hex) {
			return name
		}
	}
	return hex
}

func isHexBody(s string) bool {
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !ok {
			return false
		}
	}
	return true
}

// shortenColorName swaps a named color for its hex form when that form is
// shorter. Returns the input unchanged for anything not in the table.
func shortenColorName(ident string) string {
	if hex, ok := nameToHex[strings.ToLower(ident)]; ok && len(hex) < len(ident) {
		return hex
	}
	return ident
}

// nameToHex holds the names whose hex form is already folded; the length
// comparison at the call sites decides the direction of each swap.
var nameToHex = map[string]string{
	"black":                "#000",
	"white":                "#fff",
	"fuchsia":              "#f0f",
	"magenta":              "#f0f",
	"yellow":               "#ff0",
	"aqua":                 "#0ff",
	"cyan":                 "#0ff",
	"darkgray":             "#a9a9a9",
	"darkslategray":        "#2f4f4f",
	"lightgray":            "#d3d3d3",
	"lightslategray":       "#789",
	"darkolivegreen":       "#556b2f",
	"cornflowerblue":       "#6495ed",
	"mediumspringgreen":    "#00fa9a",
	"lightgoldenrodyellow": "#fafad2",
}

var hexToName = map[string]string{
	"#f00":    "red",
	"#ffa500": "orange",
	"#ffd700": "gold",
	"#808080": "gray",
	"#008000": "green",
	"#800080": "purple",
	"#000080": "navy",
	"#800000": "maroon",
	"#808000": "olive",
	"#008080": "teal",
	"#c0c0c0": "silver",
	"#a52a2a": "brown",
	"#f5f5dc": "beige",
	"#ffe4c4": "bisque",
	"#ff7f50": "coral",
	"#4b0082": "indigo",
	"#fffff0": "ivory",
	"#f0e68c": "khaki",
	"#faf0e6": "linen",
	"#ffc0cb": "pink",
	"#dda0dd": "plum",
	"#fa8072": "salmon",
	"#a0522d": "sienna",
	"#fffafa": "snow",
	"#d2b48c": "tan",
	"#ee82ee": "violet",
	"#f5deb3": "wheat",
}
