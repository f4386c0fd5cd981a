// Public domain.

package gnprog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

type outputOptions struct {
	headings, solar, residual, wrap, sexagesimal, copy, precise bool

	// used for records without a magnetic declination
	declination unit.Angle
}

func defaultOptions() *outputOptions {
	return &outputOptions{headings: true}
}

var rxDecl = regexp.MustCompile(`^[ \t]*=[ \t]*(.+)$`)

// parseConfig reads a config file.  Options not mentioned keep the defaults.
func parseConfig(r io.Reader) (*outputOptions, error) {
	opt := defaultOptions()
	keywords := map[string]*bool{
		"headings":    &opt.headings,
		"solar":       &opt.solar,
		"residual":    &opt.residual,
		"wrap":        &opt.wrap,
		"copy":        &opt.copy,
		"precise":     &opt.precise,
		"sexagesimal": &opt.sexagesimal,
	}
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		ls := strings.TrimSpace(sc.Text())
		if ls == "" || ls[0] == '#' {
			continue
		}
		if p, ok := keywords[ls]; ok {
			*p = true
			continue
		}
		if p, ok := keywords[strings.TrimPrefix(ls, "no")]; ok {
			*p = false
			continue
		}
		if ls == "decimal" {
			opt.sexagesimal = false
			continue
		}
		if strings.HasPrefix(ls, "declination") {
			ss := rxDecl.FindStringSubmatch(ls[len("declination"):])
			if ss == nil {
				return nil, fmt.Errorf("config line %d: invalid format for declination", n)
			}
			d, err := strconv.ParseFloat(strings.TrimSpace(ss[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("config line %d: %v", n, err)
			}
			if d < -180 || d > 180 {
				return nil, fmt.Errorf("config line %d: declination outside [-180, 180]", n)
			}
			opt.declination = unit.AngleFromDeg(d)
			continue
		}
		return nil, fmt.Errorf("config line %d: unrecognized: %s", n, ls)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return opt, nil
}
