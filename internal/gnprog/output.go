// Public domain.

package gnprog

import (
	"fmt"
	"io"
	"strings"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/gnomon/internal/gnastro"
	"github.com/soniakeys/gnomon/internal/gnformat"
	"github.com/soniakeys/gnomon/internal/gnsolver"
)

func printHeadings(w io.Writer, opt *outputOptions, sites bool) {
	if !opt.headings {
		return
	}
	fmt.Fprintln(w, versionString)
	var b strings.Builder
	b.WriteString("ID      ")
	if opt.sexagesimal {
		fmt.Fprintf(&b, " %14s %15s", "Latitude", "Longitude")
	} else {
		b.WriteString("  Latitude  Longitude")
	}
	if opt.solar {
		b.WriteString("   Elev   Decl  SunAz DoY")
	}
	if opt.residual {
		b.WriteString("   Resid")
	}
	if opt.precise {
		b.WriteString("  dDecl")
	}
	if sites {
		b.WriteString("   Err km")
	}
	if opt.copy {
		b.WriteString("  Position")
	}
	fmt.Fprintln(w, b.String())
}

// formatLine builds the output line for one solved record.
func formatLine(r *gnformat.Record, e *gnsolver.Estimate, err error,
	opt *outputOptions, sites gnformat.SiteMap) string {
	if err != nil {
		return fmt.Sprintf("%-8s %v", r.ID, err)
	}
	lon := e.Lon
	if opt.wrap {
		lon = gnsolver.WrapLon(lon)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s", r.ID)
	if opt.sexagesimal {
		fmt.Fprintf(&b, " %14s %15s", fmtSexa(e.Lat), fmtSexa(lon))
	} else {
		fmt.Fprintf(&b, " %9.4f %10.4f", e.Lat.Deg(), lon.Deg())
	}
	if opt.solar {
		fmt.Fprintf(&b, " %6.2f %6.2f %6.2f %3d", e.Elevation.Deg(),
			e.Declination.Deg(), e.SunAzimuth.Deg(), e.DayOfYear)
	}
	if opt.residual {
		fmt.Fprintf(&b, " %7.2f", e.Residual.Deg())
	}
	if opt.precise {
		d := e.Declination - gnastro.Declination(r.Meas.Time)
		fmt.Fprintf(&b, " %6.2f", d.Deg())
	}
	if sites != nil {
		if s, ok := sites[r.Site]; ok {
			fmt.Fprintf(&b, " %8.1f", gnastro.Distance(e.Lat, lon, s.Lat, s.Lon))
		} else {
			b.WriteString("        -")
		}
	}
	if opt.copy {
		fmt.Fprintf(&b, "  %s", gnformat.Position(e.Lat, lon))
	}
	return b.String()
}

func fmtSexa(a unit.Angle) string {
	return fmt.Sprintf("%.1d", sexa.FmtAngle(a))
}
