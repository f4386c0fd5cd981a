// Public domain.

package gnformat

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// Site is a known observing location.
type Site struct {
	Lat, Lon unit.Angle // Lon east positive
	Name     string
}

// SiteMap maps site codes to sites.
type SiteMap map[string]*Site

// ReadSitesFile reads a site table from a file.
func ReadSitesFile(fn string) (SiteMap, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := ReadSites(f)
	if err != nil {
		return nil, errors.New(err.Error() + " in " + fn)
	}
	return m, nil
}

// ReadSites reads a site table.
//
// Each line holds a code, latitude, and longitude, in degrees with east
// longitude positive, optionally followed by a free text name.  Lines
// that do not parse this way, such as headings, are quietly ignored, as are
// lines with latitude outside [-90, 90] or longitude outside [-180, 360).
func ReadSites(rd io.Reader) (SiteMap, error) {
	m := make(SiteMap)
	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		f := strings.Fields(sc.Text())
		if len(f) < 3 || f[0][0] == '#' {
			continue
		}
		lat, err := strconv.ParseFloat(f[1], 64)
		if err != nil || lat < -90 || lat > 90 {
			continue
		}
		lon, err := strconv.ParseFloat(f[2], 64)
		if err != nil || lon < -180 || lon >= 360 {
			continue
		}
		m[f[0]] = &Site{
			Lat:  unit.AngleFromDeg(lat),
			Lon:  unit.AngleFromDeg(lon),
			Name: strings.Join(f[3:], " "),
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, errors.New("no site data")
	}
	return m, nil
}
