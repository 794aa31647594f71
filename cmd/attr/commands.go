package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Neumenon/attrs/attr"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// ============================================================
// parse
// ============================================================

func (a *app) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>...",
		Short: "Infer the variant of each text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]*attr.Value, 0, len(args))
			for _, text := range args {
				v := attr.ParseWith(text, a.registry)
				a.logger.Debug("parsed", zap.String("text", text), zap.Stringer("type", v.Type()))
				values = append(values, v)
			}
			return a.writeValues(cmd.OutOrStdout(), values)
		},
	}
}

// ============================================================
// cast
// ============================================================

func (a *app) castCommand() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "cast <variant> <text>",
		Short: "Convert text to a variant",
		Long: `Convert text to the given variant.

Text that cannot be expressed as the variant yields the variant's default
payload, unless --strict is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := attr.ParseVariant(args[0])
			if err != nil {
				return err
			}
			text := args[1]

			probe := attr.NewString(text).WithResolver(a.registry)
			if err := probe.SetType(to); err != nil {
				if strict {
					return fmt.Errorf("cast %q: %w", text, err)
				}
				a.logger.Warn("text not convertible, using default",
					zap.String("text", text),
					zap.Stringer("type", to),
					zap.Error(err))
			}

			v := attr.New().WithResolver(a.registry)
			v.CastAndSet(to, text)
			return a.writeValues(cmd.OutOrStdout(), []*attr.Value{v})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of falling back to the default payload")
	return cmd
}

// ============================================================
// list
// ============================================================

func (a *app) listCommand() *cobra.Command {
	var retype []string
	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "Load an attribute list and print it sorted",
		Long: `Load a YAML or JSON list of {name, value, type} records into a
collection and print the attributes sorted by name.

Names are case-insensitive; a later record for the same name replaces the
earlier one. --retype NAME=VARIANT converts an attribute after loading.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				in = f
			}

			c, err := a.loadCollection(in)
			if err != nil {
				return err
			}
			for _, arg := range retype {
				name, variant, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("invalid --retype %q (want NAME=VARIANT)", arg)
				}
				to, err := attr.ParseVariant(variant)
				if err != nil {
					return err
				}
				if !c.Has(name) {
					return fmt.Errorf("retype: no attribute %q", name)
				}
				c.SetAttributeType(name, to)
			}
			return a.writeAttributes(cmd.OutOrStdout(), c.Attributes())
		},
	}
	cmd.Flags().StringArrayVar(&retype, "retype", nil, "Convert an attribute after loading (NAME=VARIANT)")
	return cmd
}

func (a *app) loadCollection(in io.Reader) (*attr.Collection, error) {
	var records []*attr.Attribute
	if err := yaml.NewDecoder(in).Decode(&records); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	c := attr.NewCollection(attr.WithLogger(a.logger))
	for i, rec := range records {
		if _, err := c.SetAttribute(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return c, nil
}

// ============================================================
// variants
// ============================================================

type variantInfo struct {
	Ordinal  int      `json:"ordinal" yaml:"ordinal"`
	Name     string   `json:"name" yaml:"name"`
	Base     bool     `json:"base" yaml:"base"`
	Number   bool     `json:"number" yaml:"number"`
	Nullable bool     `json:"nullable" yaml:"nullable"`
	Accepts  []string `json:"accepts" yaml:"accepts"`
}

func describeVariants() []variantInfo {
	all := attr.Variants()
	out := make([]variantInfo, 0, len(all))
	for _, v := range all {
		info := variantInfo{
			Ordinal:  v.Ordinal(),
			Name:     v.String(),
			Base:     v.IsBaseType(),
			Number:   v.IsNumberType(),
			Nullable: v.IsNullAllowed(),
		}
		for _, from := range all {
			if v.IsAssignableFrom(from) {
				info.Accepts = append(info.Accepts, from.String())
			}
		}
		out = append(out, info)
	}
	return out
}

func (a *app) variantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the variant catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := describeVariants()
			w := cmd.OutOrStdout()
			switch a.cfg.Output {
			case outputJSON:
				return writeJSON(w, infos)
			case outputYAML:
				return yaml.NewEncoder(w).Encode(infos)
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tVARIANT\tBASE\tNUMBER\tNULLABLE\tACCEPTS")
			for _, info := range infos {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					info.Ordinal, info.Name,
					mark(info.Base), mark(info.Number), mark(info.Nullable),
					strings.Join(info.Accepts, ","))
			}
			return tw.Flush()
		},
	}
}

func mark(b bool) string {
	if b {
		return "x"
	}
	return "-"
}

// ============================================================
// schema, version
// ============================================================

func (a *app) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the export record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), attr.ExportSchema())
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "attr %s\n", libVersion)
			return err
		},
	}
}

// ============================================================
// Output
// ============================================================

// textOf renders the payload in canonical text form, or "null".
func textOf(v *attr.Value) string {
	if !v.IsAssigned() || v.IsNull() {
		return "null"
	}
	s, err := v.AsString()
	if err != nil {
		return v.String()
	}
	return s
}

func (a *app) writeValues(w io.Writer, values []*attr.Value) error {
	switch a.cfg.Output {
	case outputJSON:
		return writeJSON(w, values)
	case outputYAML:
		return yaml.NewEncoder(w).Encode(values)
	}
	for _, v := range values {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", v.Type(), textOf(v)); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) writeAttributes(w io.Writer, attrs []*attr.Attribute) error {
	switch a.cfg.Output {
	case outputJSON:
		return writeJSON(w, attrs)
	case outputYAML:
		return yaml.NewEncoder(w).Encode(attrs)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, at := range attrs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", at.Name(), at.Type(), textOf(&at.Value))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
