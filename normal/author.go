package normal

import (
	"errors"
	"fmt"
)

// ErrUnknownStyle is returned for an unsupported author list style.
var ErrUnknownStyle = errors.New("unknown author style")

// Style names an author list convention of an export format.
type Style string

const (
	// StyleScopus lists authors as "Smith J., Doe A.B.", comma separated.
	StyleScopus Style = "scopus"
	// StyleWoS lists authors as "Smith, J; Doe, AB", semicolon separated.
	StyleWoS Style = "wos"
)

// Styles lists all supported styles.
var Styles = []Style{StyleScopus, StyleWoS}

// AuthorPipeline returns the normalizer for author fields of a given style.
// For both styles the result uses ";" between authors and contains no
// whitespace other than the one after a WoS surname comma or a former
// opening parenthesis.
func AuthorPipeline(style Style) (*Pipeline, error) {
	switch style {
	case StyleScopus:
		return &Pipeline{Normalizer: []Normalizer{
			&FoldNormalizer{},
			&UpperNormalizer{},
			&RemoveWSNormalizer{},
			&ParenNormalizer{},
			&ReplaceNormalizer{Old: ".,", New: ".;"},
		}}, nil
	case StyleWoS:
		return &Pipeline{Normalizer: []Normalizer{
			&FoldNormalizer{},
			&UpperNormalizer{},
			&RemoveWSNormalizer{},
			&ReplaceNormalizer{Old: ",", New: ", "},
			&ParenNormalizer{},
		}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
}
