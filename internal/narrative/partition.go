// Package narrative splits generated detective stories into the sections disclosed to the player.
package narrative

import (
	"regexp"
	"strings"
)

const (
	// RevealMarker separates the pre-reveal scene from the reveal.
	RevealMarker = "REVEAL & PSYCHOLOGICAL BREAKDOWN"
	// RevealUnavailable replaces the reveal when RevealMarker is missing.
	RevealUnavailable = "Reveal unavailable. (Error formatting response)"
)

// Headings are the section headers requested from the provider, in story order.
var Headings = []string{"SCENE", "SUSPECTS", "INTERROGATION", "CLUES", "DECISION", RevealMarker}

var (
	boldReveal    = regexp.MustCompile(`(?i)\*\*REVEAL`)
	headingReveal = regexp.MustCompile(`(?i)## REVEAL`)

	// Tried in order, the first spelling found wins.
	cluesMarkers    = []string{"\nCLUES", "CLUES\n", "## CLUES", "**CLUES**"}
	decisionMarkers = []string{"\nDECISION", "DECISION\n", "## DECISION", "**DECISION**"}
)

// Document is a generated narrative split into its disclosed sections.
type Document struct {
	// Raw is the provider output as received.
	Raw  string
	Mode Mode
	// Scene is everything shown before the guess.
	Scene string
	// Clues is the optional notes section, empty when absent.
	Clues string
	// Reveal is shown after the guess.
	Reveal string
}

func (d *Document) HasClues() bool {
	return d != nil && d.Clues != ""
}

// Partition splits raw into scene, clues and reveal.
//
// Partition never fails. Text without the reveal marker becomes the scene and the reveal is RevealUnavailable.
func Partition(raw string) Document {
	doc := Document{Raw: raw} //nolint:exhaustruct // filled below

	normalized := headingReveal.ReplaceAllString(boldReveal.ReplaceAllString(raw, "REVEAL"), "REVEAL")
	if i := strings.Index(normalized, RevealMarker); i >= 0 {
		doc.Scene = strings.TrimSpace(normalized[:i])
		doc.Reveal = strings.TrimSpace(normalized[i:])
	} else {
		doc.Scene = strings.TrimSpace(raw)
		doc.Reveal = RevealUnavailable
	}

	c := firstIndex(doc.Scene, cluesMarkers)
	d := firstIndex(doc.Scene, decisionMarkers)
	if c >= 0 && d > c {
		doc.Clues = strings.TrimSpace(doc.Scene[c:d])
		doc.Scene = strings.TrimSpace(doc.Scene[:c]) + "\n\n" + strings.TrimSpace(doc.Scene[d:])
	}

	return doc
}

// firstIndex returns the index of the first marker in order that occurs in s, or -1.
func firstIndex(s string, markers []string) int {
	for _, m := range markers {
		if i := strings.Index(s, m); i >= 0 {
			return i
		}
	}
	return -1
}
