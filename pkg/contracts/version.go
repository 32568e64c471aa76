package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the pipeline tools
	Version = "1.0.0"

	// DataFormatVersion is the version of the combined data file layout
	DataFormatVersion = "v1"
)

// FullVersion returns the version together with the Go runtime and
// platform, for startup logging.
func FullVersion() string {
	return fmt.Sprintf("%s (%s %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
