/*
Package pgd computes a dense ordinal descriptor of grayscale images.

For every pixel, RingCount points are placed on a circle of RingRadius around
it. Around each of those ring points, SubringCount points are placed on a
circle of SubringRadius and bilinearly interpolated. Comparing each sub-ring
sample with the next one gives an ordinal code of SubringCount bits per ring
point. The codes of all pixels are stored in a descriptor.Buffer with one
channel per ring point.

	img, err := pgd.Open("input.png")
	d, err := pgd.New(pgd.Config{RingCount: 8, RingRadius: 2})
	buf, err := d.Compute(img)

A Descriptor caches its sampling tables and can be reused for any number of
images.
*/
package pgd

import "fmt"

type PGDVersion struct {
	Major, Minor, Patch uint
}

func (v PGDVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v PGDVersion) Equal(o PGDVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v PGDVersion) After(o PGDVersion) bool {
	switch {
	case v.Major != o.Major:
		return v.Major > o.Major
	case v.Minor != o.Minor:
		return v.Minor > o.Minor
	}
	return v.Patch > o.Patch
}

func (v PGDVersion) Before(o PGDVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = PGDVersion{1, 0, 0}
