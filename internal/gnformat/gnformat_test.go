// Public domain.

package gnformat_test

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/soniakeys/gnomon/internal/gnformat"
)

func TestParseRecord(t *testing.T) {
	r, err := gnformat.ParseRecord("  s1 2023-06-21 12:07 1.00 1.25 15.5 -2.5 PAR ")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2023, 6, 21, 12, 7, 0, 0, time.UTC)
	switch {
	case r.ID != "s1":
		t.Error("id", r.ID)
	case !r.Meas.Time.Equal(want):
		t.Error("time", r.Meas.Time)
	case r.Meas.StickHeight != 1 || r.Meas.ShadowLength != 1.25:
		t.Error("lengths", r.Meas.StickHeight, r.Meas.ShadowLength)
	case math.Abs(r.Meas.ShadowAzimuth.Deg()-15.5) > 1e-12:
		t.Error("azimuth", r.Meas.ShadowAzimuth.Deg())
	case !r.HasDecl || math.Abs(r.Meas.MagneticDeclination.Deg()+2.5) > 1e-12:
		t.Error("declination", r.HasDecl, r.Meas.MagneticDeclination.Deg())
	case r.Site != "PAR":
		t.Error("site", r.Site)
	}

	r, err = gnformat.ParseRecord("s2 2023-06-21 09:30 1 2 200")
	if err != nil {
		t.Fatal(err)
	}
	if r.HasDecl || r.Meas.MagneticDeclination != 0 || r.Site != "" {
		t.Errorf("optional fields set: %+v", r)
	}
	r, err = gnformat.ParseRecord("s3 2023-06-21 09:30 1 2 200 - PAR")
	if err != nil {
		t.Fatal(err)
	}
	if r.HasDecl || r.Site != "PAR" {
		t.Errorf("dash declination: %+v", r)
	}
}

func TestParseRecordErrors(t *testing.T) {
	for _, l := range []string{
		"s1 2023-06-21 12:00 1 1",
		"s1 2023-06-21 12:00 1 1 0 0 PAR extra",
		"s1 2023-13-21 12:00 1 1 0",
		"s1 21/06/2023 12:00 1 1 0",
		"s1 2023-06-21 25:00 1 1 0",
		"s1 2023-06-21 12:00 one 1 0",
		"s1 2023-06-21 12:00 1 1 north",
		"s1 2023-06-21 12:00 1 1 0 east",
	} {
		_, err := gnformat.ParseRecord(l)
		var re *gnformat.RecordError
		if !errors.As(err, &re) {
			t.Errorf("%q: err = %v, want *RecordError", l, err)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, l := range []string{
		"s1 2023-06-21 12:07 1.00 1.25 15.5 -2.5 PAR",
		"s2 2024-02-29 23:59 0.8 3.1 301.25",
	} {
		r, err := gnformat.ParseRecord(l)
		if err != nil {
			t.Fatal(err)
		}
		r2, err := gnformat.ParseRecord(r.Format())
		if err != nil {
			t.Fatalf("%q: %v", r.Format(), err)
		}
		if r2.ID != r.ID || !r2.Meas.Time.Equal(r.Meas.Time) ||
			r2.HasDecl != r.HasDecl || r2.Site != r.Site ||
			math.Abs(r2.Meas.ShadowAzimuth.Deg()-r.Meas.ShadowAzimuth.Deg()) > 1e-9 ||
			math.Abs(r2.Meas.MagneticDeclination.Deg()-r.Meas.MagneticDeclination.Deg()) > 1e-9 {
			t.Errorf("round trip %q -> %q", l, r.Format())
		}
	}
}

func TestSplitter(t *testing.T) {
	in := `# shadow stick log
s1 2023-06-21 12:00 1 1 0

s2 2023-06-21 12:xx 1 1 0
s3 2023-06-21 13:00 1 1.1 20 1.5
`
	next := gnformat.Splitter(strings.NewReader(in))
	var ids []string
	var bad []int
	for {
		r, err := next()
		if err == io.EOF {
			break
		}
		if re, ok := err.(*gnformat.RecordError); ok {
			bad = append(bad, re.Line)
			continue
		}
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, r.ID)
	}
	if fmt.Sprint(ids) != "[s1 s3]" {
		t.Error("ids", ids)
	}
	if fmt.Sprint(bad) != "[4]" {
		t.Error("bad lines", bad)
	}
}

func TestReadSites(t *testing.T) {
	in := `Code  Lat       Lon     Name
PAR   48.8566   2.3522  Paris
SYD  -33.8688 151.2093  Sydney
BAD   95.0     10.0     nowhere
LAX   33.9416 -118.4085
`
	m, err := gnformat.ReadSites(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 3 {
		t.Fatalf("%d sites, want 3", len(m))
	}
	if s := m["SYD"]; s == nil || s.Name != "Sydney" ||
		math.Abs(s.Lat.Deg()+33.8688) > 1e-9 || math.Abs(s.Lon.Deg()-151.2093) > 1e-9 {
		t.Errorf("SYD = %+v", m["SYD"])
	}
	if s := m["LAX"]; s == nil || s.Name != "" {
		t.Errorf("LAX = %+v", m["LAX"])
	}
	if _, err := gnformat.ReadSites(strings.NewReader("nothing here\n")); err == nil {
		t.Error("expected error for empty table")
	}
}
