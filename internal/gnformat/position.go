// Public domain.

package gnformat

import (
	"fmt"

	"github.com/soniakeys/unit"
)

// Position formats a latitude and longitude as "lat, lon" in decimal
// degrees to four places, suitable for pasting into a map search.
func Position(lat, lon unit.Angle) string {
	return fmt.Sprintf("%.4f, %.4f", lat.Deg(), lon.Deg())
}
