package asset

import _ "embed"

// DefaultDeck is the scene deck used when no deck path is configured
//
//go:embed default_deck.yml
var DefaultDeck []byte
