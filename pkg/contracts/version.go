// Package contracts defines the stable types shared between the pipeline
// stages and the report consumers, plus the tool's version identity.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the application
	Version = "1.0.0"

	// DataFormatVersion is the version of the report output format
	DataFormatVersion = "v1"
)

// VersionString returns the full version string with build information
func VersionString() string {
	return fmt.Sprintf("sales-report %s (%s, %s/%s)",
		Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
