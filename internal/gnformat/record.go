// Public domain.

// Package gnformat reads and writes the text formats used by gnomon:
// shadow measurement records and site tables.
//
// A measurement record is a single line of whitespace separated fields,
//
//	<id> <YYYY-MM-DD> <HH:MM> <stick> <shadow> <azimuth> [<magdecl>|-] [<site>]
//
// Stick height and shadow length are in meters, azimuth and magnetic
// declination in degrees.  Date and time are UTC.  A magnetic declination of
// "-" or a missing field means the field was not recorded.  Site is an
// optional code naming a known location, see ReadSites.
//
// Blank lines and lines starting with # are ignored.
package gnformat

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/gnomon/internal/gnsolver"
)

// Record is a parsed measurement line.
type Record struct {
	ID   string
	Meas gnsolver.Measurement

	// HasDecl is false if the record had no magnetic declination.
	// Meas.MagneticDeclination is zero then.
	HasDecl bool

	Site string // optional
}

// RecordError reports an unparseable measurement line.
type RecordError struct {
	Line   int // 1 based, 0 if unknown
	Reason string
}

func (e *RecordError) Error() string {
	if e.Line == 0 {
		return "gnformat: " + e.Reason
	}
	return fmt.Sprintf("gnformat: line %d: %s", e.Line, e.Reason)
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseRecord parses a single measurement line.
//
// Only syntax is checked here.  Field ranges are checked by
// gnsolver.Measurement.Validate.
func ParseRecord(line string) (r Record, err error) {
	f := strings.Fields(line)
	if len(f) < 6 || len(f) > 8 {
		return r, &RecordError{Reason: fmt.Sprintf("%d fields, want 6 to 8", len(f))}
	}
	r.ID = f[0]
	d, err := time.Parse(dateLayout, f[1])
	if err != nil {
		return r, &RecordError{Reason: "invalid date " + f[1]}
	}
	tod, err := time.Parse(timeLayout, f[2])
	if err != nil {
		return r, &RecordError{Reason: "invalid time " + f[2]}
	}
	r.Meas.Time = d.Add(time.Duration(tod.Hour())*time.Hour +
		time.Duration(tod.Minute())*time.Minute)

	var v [3]float64
	for i, name := range []string{"stick height", "shadow length", "azimuth"} {
		if v[i], err = strconv.ParseFloat(f[3+i], 64); err != nil {
			return r, &RecordError{Reason: fmt.Sprintf("invalid %s %s", name, f[3+i])}
		}
	}
	r.Meas.StickHeight = v[0]
	r.Meas.ShadowLength = v[1]
	r.Meas.ShadowAzimuth = unit.AngleFromDeg(v[2])

	if len(f) > 6 && f[6] != "-" {
		md, err := strconv.ParseFloat(f[6], 64)
		if err != nil {
			return r, &RecordError{Reason: "invalid magnetic declination " + f[6]}
		}
		r.Meas.MagneticDeclination = unit.AngleFromDeg(md)
		r.HasDecl = true
	}
	if len(f) > 7 {
		r.Site = f[7]
	}
	return r, nil
}

// Format returns r as a measurement line that ParseRecord will accept.
func (r *Record) Format() string {
	t := r.Meas.Time.UTC()
	md := "-"
	if r.HasDecl {
		md = strconv.FormatFloat(r.Meas.MagneticDeclination.Deg(), 'f', 2, 64)
	}
	// 359.996 would print as 360.00
	az := math.Round(r.Meas.ShadowAzimuth.Deg()*100) / 100
	if az >= 360 {
		az -= 360
	}
	s := fmt.Sprintf("%-8s %s %s %6.3f %7.3f %6.2f %6s",
		r.ID, t.Format(dateLayout), t.Format(timeLayout),
		r.Meas.StickHeight, r.Meas.ShadowLength, az, md)
	if r.Site > "" {
		s += " " + r.Site
	}
	return s
}

// Splitter returns a function that reads successive records from rd.
//
// The returned function returns io.EOF at end of input.  Parse failures are
// returned as *RecordError carrying the line number, and reading can
// continue after them.  Other errors are read errors and end the input.
func Splitter(rd io.Reader) func() (Record, error) {
	sc := bufio.NewScanner(rd)
	n := 0
	return func() (Record, error) {
		for sc.Scan() {
			n++
			l := strings.TrimSpace(sc.Text())
			if l == "" || l[0] == '#' {
				continue
			}
			r, err := ParseRecord(l)
			if re, ok := err.(*RecordError); ok {
				re.Line = n
			}
			return r, err
		}
		if err := sc.Err(); err != nil {
			return Record{}, err
		}
		return Record{}, io.EOF
	}
}
