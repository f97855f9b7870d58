package exporter

import "strings"

// reservedSuffixes are the extensions the walker itself generates. A design
// literally named "part.stp" must not collide with the generated part.stp
// STEP file, so a trailing reserved suffix has its dot replaced with an
// underscore.
var reservedSuffixes = []string{".stp", ".stl", ".igs"}

// Sanitize maps an arbitrary display name to a safe path segment: every
// character outside [A-Za-z0-9 \n.] is removed, surrounding whitespace is
// trimmed, and a trailing reserved export suffix is defused ("Part.stp"
// becomes "Part_stp"). Sanitize is total and idempotent; empty input yields
// empty output.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\n', r == '.':
			b.WriteRune(r)
		}
	}

	name = strings.TrimSpace(b.String())

	for _, suffix := range reservedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return name[:len(name)-4] + "_" + name[len(name)-3:]
		}
	}

	return name
}
