package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrstore/pkg/errors"
	pkgio "github.com/matzehuels/csrstore/pkg/io"
	"github.com/matzehuels/csrstore/pkg/pipeline"
)

// convertCommand creates the convert command for writing a graph in another
// format.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output string
		to     string
		flags  buildFlags
	)

	cmd := &cobra.Command{
		Use:   "convert [graph file]",
		Short: "Convert a graph file to a binary snapshot or another format",
		Long: `Convert a graph file to a binary snapshot or another format.

The input is parsed with the build options, built into CSR form and written
as one of: ` + strings.Join(pipeline.ValidFormats, ", ") + `.

The output format follows the extension of --output unless --to is given.
Without --output the result is written next to the input, with the
extension replaced by the format name.

Built graphs are cached locally, so converting the same input twice parses it once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], output, to, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input path with the format extension)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "output format: "+strings.Join(pipeline.ValidFormats, ", ")+" (default: from --output)")
	flags.register(cmd)
	registerOutputCompletions(cmd)

	return cmd
}

// runConvert loads the input and writes it in the requested format.
func (c *CLI) runConvert(cmd *cobra.Command, input, output, to string, flags *buildFlags) error {
	format, output, err := convertTarget(input, output, to)
	if err != nil {
		return err
	}

	runner, res, err := c.load(cmd, input, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	ctx := cmd.Context()
	write := startStep(ctx, "export")
	data, err := runner.Export(ctx, res, format)
	if err != nil {
		return err
	}
	if err := pkgio.WriteFile(output, data); err != nil {
		return err
	}
	write.done("format", format, "bytes", len(data))

	out := newPrinter(cmd.OutOrStdout())
	out.success("Converted %s", filepath.Base(input))
	out.file(output)
	out.counts(res.Graph, res.CacheHit)
	if format == pipeline.FormatBinary {
		out.newline()
		out.nextStep("Inspect", appName+" stats "+output)
	}
	return nil
}

// convertTarget resolves the output path and format. An explicit format wins
// over the extension of the output path.
func convertTarget(input, output, to string) (format, path string, err error) {
	switch {
	case to != "":
		if err := pipeline.ValidateFormat(to); err != nil {
			return "", "", err
		}
		format = to
	case output != "":
		if format, err = pipeline.FormatFromPath(output); err != nil {
			return "", "", err
		}
	default:
		format = pipeline.FormatBinary
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
		if output == input {
			return "", "", errors.New(errors.ErrCodeInvalidInput, "output would overwrite %s; pass --output", input)
		}
	}
	return format, output, nil
}
