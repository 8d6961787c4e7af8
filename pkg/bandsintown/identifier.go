package bandsintown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ProfileBaseURL is the prefix of public artist pages on bandsintown.com.
const ProfileBaseURL = "http://www.bandsintown.com/"

// mbidPrefix marks identifiers built from a MusicBrainz id instead of a name.
const mbidPrefix = "mbid_"

// asciiSpace is the whitespace trimmed from names and used to split words.
// Other Unicode spaces, such as U+00A0, are part of a word.
const asciiSpace = " \t\n\v\f\r"

// GenerateIdentifier converts an artist name into the path segment the API
// uses to address the artist. The same segment is the suffix of the artist's
// public profile URL.
//
// The name is trimmed, "&" becomes "And" and "+" becomes "Plus". Names of more
// than one word are camelized ("meg & dia" becomes "MegAndDia"); single words
// keep their case ("AWOL" stays "AWOL"). Finally "/" and "?" are escaped once
// on their own and the whole segment is escaped again, so those two
// characters come out double encoded ("AC/DC" becomes "AC%252FDC").
//
// When name is empty the identifier falls back to "mbid_" + fallbackID,
// unescaped. ErrInvalidIdentifier is returned when both are empty.
//
// Example:
//
//	id, err := bandsintown.GenerateIdentifier("Sigur Rós", "")
//	// id == "SigurR%C3%B3s"
func GenerateIdentifier(name, fallbackID string) (string, error) {
	name = strings.Trim(name, asciiSpace)
	if name == "" {
		if fallbackID == "" {
			return "", ErrInvalidIdentifier
		}
		return mbidPrefix + fallbackID, nil
	}

	name = strings.ReplaceAll(name, "&", "And")
	name = strings.ReplaceAll(name, "+", "Plus")

	return escapePathSegment(escapeReserved(camelize(name))), nil
}

// ProfileURL returns the public bandsintown.com page for an artist.
func ProfileURL(name, fallbackID string) (string, error) {
	id, err := GenerateIdentifier(name, fallbackID)
	if err != nil {
		return "", err
	}
	return ProfileBaseURL + id, nil
}

// camelize capitalizes every word separated by ASCII whitespace and joins
// them with no separator. A single word is returned as is.
func camelize(name string) string {
	words := strings.FieldsFunc(name, isASCIISpace)
	if len(words) < 2 {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func isASCIISpace(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(asciiSpace, byte(r)) >= 0
}

// capitalize upper-cases the first rune of word and lower-cases the rest.
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(word[size:])
}

var reservedReplacer = strings.NewReplacer("/", "%2F", "?", "%3F")

// escapeReserved percent-encodes "/" and "?" ahead of escapePathSegment.
func escapeReserved(s string) string {
	return reservedReplacer.Replace(s)
}

const upperhex = "0123456789ABCDEF"

// escapePathSegment percent-encodes every byte outside the segment-safe set.
// "%" is never safe, so sequences produced by escapeReserved are escaped a
// second time.
func escapePathSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSegmentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isSegmentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'();:@&=+$,[]", c) >= 0
}
