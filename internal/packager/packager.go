// Package packager decides how a slide's labeled units travel to the
// analysis service: one discrete image each, or all per-image units
// concatenated into a single composite. Either way every transmitted
// image carries the manifest of identifiers its pixels contain.
package packager

import (
	"fmt"
	"image"

	"github.com/deckwise/deckbrief/pkg/raster"
)

// Unit is one labeled image ready for packaging.
type Unit struct {
	Image image.Image
	ID    string
}

// Item is one transmittable image. IDs lists every identifier whose
// pixels the image contains (one for a discrete unit, all constituent
// ids for a composite). Stem names the temporary PNG used for staging.
type Item struct {
	Image image.Image
	IDs   []string
	Stem  string
}

// Snapshot reports whether the item is a full-page snapshot rather than
// an extracted picture (or composite of pictures). The service's
// instructions distinguish the two namespaces.
func (it Item) Snapshot() bool {
	return len(it.IDs) == 1 && len(it.IDs[0]) > 0 && it.IDs[0][0] == 's'
}

// Build produces the ordered transmittable set for one slide: the
// per-image units (discrete, or one composite when combine is set),
// followed by the snapshot. The snapshot always travels discrete so the
// service can tell individual images and full-page snapshots apart. A
// slide with no pictures never yields a composite, only the snapshot.
func Build(slideNumber int, units []Unit, snapshot *Unit, combine bool) ([]Item, error) {
	var items []Item

	switch {
	case len(units) == 0:
		// Nothing to combine or send individually.
	case combine:
		images := make([]image.Image, len(units))
		ids := make([]string, len(units))
		for i, u := range units {
			images[i] = u.Image
			ids[i] = u.ID
		}
		composite, err := raster.ConcatHorizontal(images)
		if err != nil {
			return nil, fmt.Errorf("slide %d composite: %w", slideNumber, err)
		}
		items = append(items, Item{
			Image: composite,
			IDs:   ids,
			Stem:  fmt.Sprintf("combined_image_%d", slideNumber-1),
		})
	default:
		for i, u := range units {
			items = append(items, Item{
				Image: u.Image,
				IDs:   []string{u.ID},
				Stem:  fmt.Sprintf("temp_image_%d_%d", slideNumber, i+1),
			})
		}
	}

	if snapshot != nil {
		items = append(items, Item{
			Image: snapshot.Image,
			IDs:   []string{snapshot.ID},
			Stem:  snapshot.ID,
		})
	}

	return items, nil
}
