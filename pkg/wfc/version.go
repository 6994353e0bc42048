package wfc

import "fmt"

// Version describes the package's public API version using semantic
// versioning, tracking the Rule/World/Propagator surface across
// major/minor/patch changes.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String renders the version as "MAJOR.MINOR.PATCH".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// CurrentVersion is the API version of this package.
var CurrentVersion = Version{Major: 1, Minor: 0, Patch: 0}
