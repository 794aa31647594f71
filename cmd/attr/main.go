// attr - typed attribute value tool
//
// Usage:
//
//	attr parse <text>...             Infer the variant of each text and print the value
//	attr cast <variant> <text>       Convert text to a variant (falls back to the default)
//	attr list [file]                 Load a YAML/JSON attribute list and print it sorted
//	attr variants                    List the variant catalog with capabilities
//	attr schema                      Print the JSON Schema of the export record
//	attr version                     Print version info
//
// Global flags:
//
//	-o, --output text|json|yaml      Output format (env ATTR_OUTPUT, default text)
//	-r, --registry <file>            YAML registry of enumerations and type names (env ATTR_REGISTRY)
//	-v, --verbose                    Debug logging (env ATTR_LOG_LEVEL sets the level otherwise)
//
// If no file is given to list, it reads from stdin.
package main

import (
	"fmt"
	"os"
)

const libVersion = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "attr:", err)
		os.Exit(1)
	}
}
