package playerbar

import (
	"fmt"

	"github.com/llehouerou/eko/internal/icons"
)

// RenderVolumeCompact renders the volume indicator, e.g. "vol  80%".
// A muted output shows the mute icon and the level it will return to.
func RenderVolumeCompact(volume float64, muted bool) string {
	pct := int(volume*100 + 0.5)
	return metaStyle().Render(fmt.Sprintf("%s %3d%%", icons.Volume(muted), pct))
}
