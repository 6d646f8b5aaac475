package report

import (
	"trr/common"
)

// DividerClass marks outer container of every region which follows another
// non-empty region.
const DividerClass = "section-divider"

// Section is a region placed into the document.
type Section struct {
	Region  Region
	Divider bool
}

// Assemble orders regions and decides where dividers go. Regions are taken
// strictly in the requested order, kinds without content (or repeated, or
// invalid) contribute nothing. Divider is attached to every emitted region
// except the first one, so the number of dividers is always one less than
// the number of emitted regions.
func Assemble(regions Regions, order []common.RegionKind) []Section {
	var (
		sections           []Section
		hasPreviousContent bool
		seen               = make(map[common.RegionKind]bool, len(order))
	)
	for _, kind := range order {
		if !kind.IsValid() || seen[kind] {
			continue
		}
		seen[kind] = true

		for _, r := range regions[kind] {
			if r.Empty() {
				continue
			}
			sections = append(sections, Section{Region: r, Divider: hasPreviousContent})
			hasPreviousContent = true
		}
	}
	return sections
}
