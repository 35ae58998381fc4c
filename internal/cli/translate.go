package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/strand/internal/model"
	"github.com/roach88/strand/internal/translator"
)

// TranslateResult wraps an interpretation for text rendering.
type TranslateResult struct {
	translator.Interpretation `yaml:",inline"`
}

// String renders the parsed filters as canonical JSON.
func (r TranslateResult) String() string {
	filters, err := model.MarshalCanonical(r.ParsedFilters.Object())
	if err != nil {
		return fmt.Sprintf("query: %s\nfilters: <%v>", r.Original, err)
	}
	return fmt.Sprintf("query: %s\nfilters: %s", r.Original, filters)
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <query>...",
		Short: "Show the filters a natural-language query maps to",
		Long: `Translate a natural-language query into the structured filters used by
GET /strings/filter-by-natural-language. Arguments are joined with spaces.

Example:
  strand translate all single word palindromic strings
  strand translate "strings longer than 10" --format yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(rootOpts, strings.Join(args, " "), cmd)
		},
	}

	return cmd
}

func runTranslate(opts *RootOptions, query string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if strings.TrimSpace(query) == "" {
		if err := formatter.Error("EMPTY_QUERY", "query must not be blank"); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, "query must not be blank")
	}

	interp := translator.Interpret(query)
	if interp.ParsedFilters.IsEmpty() {
		formatter.VerboseLog("No recognized phrases in %q; every record would match", query)
	}
	return formatter.Success(TranslateResult{Interpretation: interp})
}
