package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/strand/internal/analysis"
	"github.com/roach88/strand/internal/model"
)

// AnalyzeResult is the output of the analyze command.
type AnalyzeResult struct {
	Value      string           `json:"value" yaml:"value"`
	Properties model.Properties `json:"properties" yaml:"properties"`
}

// WriteText renders the result as an aligned table followed by the
// character frequencies in canonical key order.
func (r AnalyzeResult) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p := r.Properties
	fmt.Fprintf(tw, "value\t%q\n", r.Value)
	fmt.Fprintf(tw, "length\t%d\n", p.Length)
	fmt.Fprintf(tw, "is_palindrome\t%t\n", p.IsPalindrome)
	fmt.Fprintf(tw, "unique_characters\t%d\n", p.UniqueCharacters)
	fmt.Fprintf(tw, "word_count\t%d\n", p.WordCount)
	fmt.Fprintf(tw, "sha256_hash\t%s\n", p.SHA256Hash)
	fmt.Fprintln(tw, "character_frequency_map")
	for _, c := range model.SortedKeys(p.CharacterFrequency) {
		fmt.Fprintf(tw, "  %q\t%d\n", c, p.CharacterFrequency[c])
	}
	return tw.Flush()
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <value>",
		Short: "Compute string properties without storing",
		Long: `Compute the properties the API stores for a value, without touching
the database.

Example:
  strand analyze racecar
  strand analyze "hello world" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runAnalyze(opts *RootOptions, value string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	formatter.VerboseLog("Analyzing %d byte(s)", len(value))

	return formatter.Success(AnalyzeResult{
		Value:      value,
		Properties: analysis.Analyze(value),
	})
}
