package main

import (
	"flag"
	"strings"
)

type boolFlag interface {
	IsBoolFlag() bool
}

// liftFlags splits args into flags known to fs and positional arguments, so
// flags may appear anywhere on the command line. A lone "-" is positional,
// as FEN uses it for empty fields. Unknown flags are kept with the flags so
// that parsing reports them.
func liftFlags(fs *flag.FlagSet, args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' {
			positional = append(positional, arg)
			continue
		}
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		flags = append(flags, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if b, ok := f.Value.(boolFlag); ok && b.IsBoolFlag() {
			continue
		}
		if i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return flags, positional
}
