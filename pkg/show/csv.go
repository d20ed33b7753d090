package show

import (
	"strings"

	"github.com/sketchbomb/runorder/pkg/errors"
)

// CSVOptions controls casting-sheet parsing.
type CSVOptions struct {
	// Sep separates the columns. Defaults to ",".
	Sep string
	// CastSep separates performers inside the cast column. Defaults to " ".
	CastSep string
	// NoHeader treats the first line as data instead of a header row.
	NoHeader bool
}

func (o *CSVOptions) setDefaults() {
	if o.Sep == "" {
		o.Sep = ","
	}
	if o.CastSep == "" {
		o.CastSep = " "
	}
}

// ParseCSV parses casting-sheet text into sketches.
//
// Expected columns: title, cast, anchored. The anchored column is optional;
// a two-column row defaults to anchored=false. The anchored value is parsed
// case-insensitively, with anything other than "true" meaning false. Blank
// lines are skipped. Rows with more than three columns or an empty title are
// rejected with an INVALID_CSV error.
func ParseCSV(text string, opts CSVOptions) ([]Sketch, error) {
	opts.setDefaults()

	lines := strings.Split(text, "\n")
	if !opts.NoHeader && len(lines) > 0 {
		lines = lines[1:]
	}

	var sketches []Sketch
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, opts.Sep)
		var title, cast, anchored string
		switch len(cols) {
		case 2:
			title, cast = cols[0], cols[1]
		case 3:
			title, cast, anchored = cols[0], cols[1], cols[2]
		default:
			return nil, errors.New(errors.ErrCodeInvalidCSV, "line %d: expected 2 or 3 columns, got %d", i+1, len(cols))
		}

		sketch, err := NewSketch(
			title,
			NewCast(strings.Split(strings.TrimSpace(cast), opts.CastSep)...),
			strings.EqualFold(strings.TrimSpace(anchored), "true"),
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCSV, err, "line %d", i+1)
		}
		sketches = append(sketches, sketch)
	}
	return sketches, nil
}
