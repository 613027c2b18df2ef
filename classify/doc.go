// Package classify decides what a single stand-table text line is.
//
// Every line of a page is tagged with exactly one [Kind]:
//
//   - [SectionEnd] - an appendix page footer such as "A - 6". The table on
//     the current page ends here; nothing after it is read.
//   - [Noise] - blank lines, the table title, the column header and dated
//     footers. Skipped without touching any state.
//   - [LifeformMarker] - a lifeform class name ("Tree", "Shrub", ...) on a
//     line of its own. Subsequent rows belong to that class.
//   - [DataCandidate] - anything else; handed to the row segmenter.
//
// The checks run in that order and the first match wins, so a line can
// carry only one tag.
//
// # Configuration
//
// The boilerplate strings and class names vary between report series and
// are held in [Config]:
//
//	cfg := classify.DefaultConfig()
//	cfg.NoiseLines = append(cfg.NoiseLines, "Mojave Desert Vegetation Map")
//	c := classify.New(cfg)
//	tag := c.Classify("Shrub")
package classify
