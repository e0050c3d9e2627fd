package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"quizgen-service/internal/extract"
)

// NewExtractCmd validates a saved model reply, from a file or stdin.
func NewExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract and validate questions from raw model output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			raw, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			records, err := extract.Extract(string(raw))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}
}
