package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the role of a text line on a stand-table page.
type Kind int

const (
	// DataCandidate is a line that may hold a species row.
	DataCandidate Kind = iota
	// Noise is a header, footer or blank line.
	Noise
	// SectionEnd terminates the table on the current page.
	SectionEnd
	// LifeformMarker switches the lifeform class of the rows that follow.
	LifeformMarker
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case DataCandidate:
		return "data"
	case Noise:
		return "noise"
	case SectionEnd:
		return "section-end"
	case LifeformMarker:
		return "lifeform"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Tag is the classification of one line. Value holds the class name for
// LifeformMarker tags and is empty otherwise.
type Tag struct {
	Kind  Kind
	Value string
}

func (t Tag) String() string {
	if t.Kind == LifeformMarker {
		return t.Kind.String() + "(" + t.Value + ")"
	}
	return t.Kind.String()
}

// sectionEndPattern matches appendix footers like "A - 6".
var sectionEndPattern = regexp.MustCompile(`^[A-Z] - \d+$`)

// Config holds the report-specific strings the classifier matches against.
type Config struct {
	// NoiseLines are whole lines skipped on exact match.
	NoiseLines []string

	// NoiseSubstrings mark a line as noise when it contains any of them.
	// Used for dated footers.
	NoiseSubstrings []string

	// Classes are the lifeform class names recognised as markers.
	Classes []string
}

// DefaultConfig returns the configuration for the National Park Service
// vegetation mapping reports.
//
// Only "January" is a default noise substring. Other month names occur
// inside genus names ("Marchantia" is a liverwort filed under Nonvascular),
// so adding them must be a per-report decision.
func DefaultConfig() Config {
	return Config{
		NoiseLines: []string{
			"Stand Table",
			"Lifeform Species Name Con Avg Min Max D Ch Ab Oft",
			"January 2012",
		},
		NoiseSubstrings: []string{"January"},
		Classes:         []string{"Tree", "Shrub", "Herb", "Nonvascular"},
	}
}

// Classifier tags text lines. It is immutable and safe for concurrent use.
type Classifier struct {
	noise      map[string]struct{}
	substrings []string
	classes    map[string]struct{}
}

// New creates a Classifier from cfg. Empty entries are ignored.
func New(cfg Config) *Classifier {
	c := &Classifier{
		noise:   make(map[string]struct{}, len(cfg.NoiseLines)),
		classes: make(map[string]struct{}, len(cfg.Classes)),
	}
	for _, s := range cfg.NoiseLines {
		if s = strings.TrimSpace(s); s != "" {
			c.noise[s] = struct{}{}
		}
	}
	for _, s := range cfg.NoiseSubstrings {
		if s != "" {
			c.substrings = append(c.substrings, s)
		}
	}
	for _, s := range cfg.Classes {
		if s = strings.TrimSpace(s); s != "" {
			c.classes[s] = struct{}{}
		}
	}
	return c
}

// Default returns a Classifier built from DefaultConfig.
func Default() *Classifier {
	return New(DefaultConfig())
}

// Classify returns the tag for line. Leading and trailing whitespace is
// ignored.
func (c *Classifier) Classify(line string) Tag {
	line = strings.TrimSpace(line)

	if sectionEndPattern.MatchString(line) {
		return Tag{Kind: SectionEnd}
	}
	if c.isNoise(line) {
		return Tag{Kind: Noise}
	}
	if _, ok := c.classes[line]; ok {
		return Tag{Kind: LifeformMarker, Value: line}
	}
	return Tag{Kind: DataCandidate}
}

func (c *Classifier) isNoise(line string) bool {
	if line == "" {
		return true
	}
	if _, ok := c.noise[line]; ok {
		return true
	}
	for _, s := range c.substrings {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
