// Public domain.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/unit"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/gnomon/internal/gnastro"
	"github.com/soniakeys/gnomon/internal/gnformat"
)

const versionString = "gnsim version 0.1"
const copyrightString = "Public domain."

type params struct {
	lat, lon, decl unit.Angle
	from, to       time.Time
	every          time.Duration
	stick, noise   float64
	site           string
	model          gnastro.Model
}

func main() {
	defer exit.Handler()

	var p params
	var lat, lon, decl float64
	var date, from, to string
	var every int
	var seed uint64
	flag.Float64Var(&lat, "lat", 0, "latitude, degrees")
	flag.Float64Var(&lon, "lon", 0, "longitude, degrees east")
	flag.Float64Var(&decl, "decl", 0, "magnetic declination of the compass, degrees")
	flag.StringVar(&date, "date", "", "UTC date, YYYY-MM-DD (default today)")
	flag.StringVar(&from, "from", "06:00", "first UTC time")
	flag.StringVar(&to, "to", "18:00", "last UTC time")
	flag.IntVar(&every, "every", 60, "minutes between measurements")
	flag.Float64Var(&p.stick, "stick", 1, "stick height, meters")
	flag.Float64Var(&p.noise, "noise", 0, "standard deviation of measurement error, meters and degrees")
	flag.Uint64Var(&seed, "seed", 0, "random seed for noise, 0 for a random seed")
	flag.StringVar(&p.site, "site", "", "site code to put in records")
	approx := flag.Bool("approx", false, "use gnomon's own solar approximations")
	vers := flag.Bool("v", false, "display version and copyright")
	flag.Usage = func() {
		os.Stderr.WriteString("Usage: gnsim [options]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(1)
	}
	switch {
	case lat < -90 || lat > 90:
		exit.Log("latitude must be in [-90, 90]")
	case decl < -180 || decl > 180:
		exit.Log("declination must be in [-180, 180]")
	case every <= 0:
		exit.Log("-every must be positive")
	case !(p.stick > 0):
		exit.Log("-stick must be positive")
	case p.noise < 0:
		exit.Log("-noise must not be negative")
	}
	p.lat = unit.AngleFromDeg(lat)
	p.lon = unit.AngleFromDeg(lon)
	p.decl = unit.AngleFromDeg(decl)
	p.every = time.Duration(every) * time.Minute
	if *approx {
		p.model = gnastro.Approx
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	if date > "" {
		var err error
		if day, err = time.Parse("2006-01-02", date); err != nil {
			exit.Log(err)
		}
	}
	var err error
	if p.from, err = atTime(day, from); err != nil {
		exit.Log(err)
	}
	if p.to, err = atTime(day, to); err != nil {
		exit.Log(err)
	}

	rnd := xrand.New(&xrand.PCGSource{})
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd.Seed(seed)

	w := bufio.NewWriter(os.Stdout)
	if _, err := generate(w, &p, rnd); err != nil {
		exit.Log(err)
	}
	if err := w.Flush(); err != nil {
		exit.Log(err)
	}
}

func atTime(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return t, err
	}
	return day.Add(time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute), nil
}

// generate writes a record for each time in p.from to p.to with the sun up
// and returns the number written.
func generate(w io.Writer, p *params, rnd *xrand.Rand) (n int, err error) {
	prefix := p.site
	if prefix == "" {
		prefix = "g"
	}
	for t := p.from; !t.After(p.to); t = t.Add(p.every) {
		m, err := p.model.Simulate(p.lat, p.lon, t, p.stick, p.decl)
		if err == gnastro.ErrBelowHorizon {
			continue
		}
		if err != nil {
			return n, err
		}
		if p.noise > 0 {
			m.ShadowLength = math.Abs(m.ShadowLength + p.noise*rnd.NormFloat64())
			az := unit.PMod(m.ShadowAzimuth.Deg()+p.noise*rnd.NormFloat64(), 360)
			m.ShadowAzimuth = unit.AngleFromDeg(az)
		}
		r := gnformat.Record{
			ID:      fmt.Sprintf("%s%04d", prefix, n+1),
			Meas:    m,
			HasDecl: true,
			Site:    p.site,
		}
		if _, err := fmt.Fprintln(w, r.Format()); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
