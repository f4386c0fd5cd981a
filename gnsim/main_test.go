// Public domain.

package main

import (
	"bytes"
	"io"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/unit"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/gnomon/internal/gnastro"
	"github.com/soniakeys/gnomon/internal/gnformat"
)

func testParams() *params {
	day := time.Date(2023, 6, 21, 0, 0, 0, 0, time.UTC)
	return &params{
		lat:   unit.AngleFromDeg(48.8566),
		lon:   unit.AngleFromDeg(2.3522),
		decl:  unit.AngleFromDeg(1.5),
		from:  day,
		to:    day.Add(23 * time.Hour),
		every: time.Hour,
		stick: 1,
		site:  "PAR",
	}
}

func TestGenerate(t *testing.T) {
	p := testParams()
	var b bytes.Buffer
	n, err := generate(&b, p, xrand.New(&xrand.PCGSource{}))
	if err != nil {
		t.Fatal(err)
	}
	// Paris at midsummer has the sun up roughly 04h to 20h UTC
	if n < 14 || n > 18 {
		t.Fatalf("%d records", n)
	}
	next := gnformat.Splitter(&b)
	for i := 0; ; i++ {
		r, err := next()
		if err == io.EOF {
			if i != n {
				t.Fatalf("read %d records, wrote %d", i, n)
			}
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if r.Site != "PAR" || !r.HasDecl {
			t.Fatalf("record %+v", r)
		}
		if err := r.Meas.Validate(); err != nil {
			t.Fatalf("%s: %v", r.ID, err)
		}
		_, el := gnastro.Sun(r.Meas.Time, p.lat, p.lon)
		got := math.Atan(r.Meas.StickHeight/r.Meas.ShadowLength) * 180 / math.Pi
		// shadow length is written to the millimeter
		if math.Abs(got-el.Deg()) > .5 && el.Deg() > 5 {
			t.Errorf("%s: elevation %v, want %v", r.ID, got, el.Deg())
		}
	}
}

func TestGenerateNoise(t *testing.T) {
	p := testParams()
	p.noise = .01
	gen := func(seed uint64) string {
		rnd := xrand.New(&xrand.PCGSource{})
		rnd.Seed(seed)
		var b bytes.Buffer
		if _, err := generate(&b, p, rnd); err != nil {
			t.Fatal(err)
		}
		return b.String()
	}
	a, b, c := gen(3), gen(3), gen(4)
	if a != b {
		t.Error("same seed, different output")
	}
	if a == c {
		t.Error("different seed, same output")
	}
	p.noise = 0
	if clean := gen(3); clean == a {
		t.Error("noise had no effect")
	}
}
