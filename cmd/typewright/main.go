// Command typewright is a small CLI over the library's demo user type:
// validate checks a JSON document piped on stdin, schema prints that
// type's JSON Schema.
package main

import (
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/archwright/typewright"
	"github.com/archwright/typewright/schema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `typewright CLI

Usage:
  typewright validate   < doc.json
  typewright schema [-yaml]`)
}

// demoType is the built-in schema both subcommands exercise: a user
// record with a required name, an age rule-checked to be non-negative,
// and a defaulted role.
func demoType() *typewright.Type {
	age := typewright.Integer().MustRule("gte", 0)
	return schema.New().
		Field("name", typewright.String()).
		Field("age", age).
		OptionalField("role", typewright.String(), "member").
		Build()
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	_ = fs.Parse(args)

	var raw any
	if err := json.NewDecoder(os.Stdin).Decode(&raw); err != nil {
		fmt.Fprintf(os.Stderr, "decode stdin: %v\n", err)
		os.Exit(2)
	}

	t := demoType()
	value, err := t.Parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
		os.Exit(1)
	}
	out, _ := json.MarshalIndent(value, "", "  ")
	fmt.Println(string(out))
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var asYAML bool
	fs.BoolVar(&asYAML, "yaml", false, "print as YAML instead of JSON")
	_ = fs.Parse(args)

	s := demoType().JSONSchema()
	if asYAML {
		data, err := s.ToYAML()
		if err != nil {
			fmt.Fprintf(os.Stderr, "render yaml: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
		return
	}
	data, err := s.ToJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "render json: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
