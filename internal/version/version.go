// Package version reports build metadata for the binary.
package version

import (
	"path"
	"runtime/debug"
)

// Set at link time, e.g.
//
//	go build -ldflags "-X github.com/hailam/perft/internal/version.Version=v1.2.0"
var (
	Company = ""
	Product = ""
	Version = ""
)

// Info is the metadata embedded in the running binary.
type Info struct {
	Company   string
	Product   string
	Version   string
	Available bool
}

// Get returns link-time metadata, falling back to the module build info.
func Get() Info {
	return resolve(Company, Product, Version, debug.ReadBuildInfo)
}

func resolve(company, product, version string, read func() (*debug.BuildInfo, bool)) Info {
	info := Info{Company: company, Product: product, Version: version}

	if info.Product == "" || info.Version == "" {
		if bi, ok := read(); ok && bi.Main.Path != "" {
			if info.Product == "" {
				info.Product = path.Base(bi.Main.Path)
			}
			if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
				info.Version = bi.Main.Version
			}
		}
	}

	info.Available = info.Product != "" && info.Version != ""
	return info
}

// Banner returns the greeting printed by the -version flag.
func (i Info) Banner() string {
	if !i.Available {
		return "No version info available"
	}
	s := ""
	if i.Company != "" {
		s = "Hello " + i.Company + "!\n"
	}
	return s + "Product " + i.Product + " " + i.Version + "!"
}

// String returns "product version", or "unknown".
func (i Info) String() string {
	if !i.Available {
		return "unknown"
	}
	return i.Product + " " + i.Version
}
