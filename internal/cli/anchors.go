package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/slug/pkg/anchor"
	"github.com/dmitrymomot/slug/pkg/sanitizer"
)

func newAnchorsCmd(a *app) *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "anchors FILE",
		Short: "List the heading anchors of a Markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			l, err := a.logger()
			if err != nil {
				return err
			}
			store, err := a.newStore(l)
			if err != nil {
				return err
			}
			opts := []anchor.Option{anchor.WithStore(store)}

			out := cmd.OutOrStdout()
			if asHTML {
				opts = append(opts, anchor.WithPolicy(sanitizer.MarkdownPolicy()))
				return anchor.Render(out, src, opts...)
			}

			headings, err := anchor.Headings(src, opts...)
			if err != nil {
				return err
			}
			for _, h := range headings {
				if _, err := fmt.Fprintf(out, "%s\t%d\t%s\n", h.ID, h.Level, h.Text); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "print the rendered, sanitized HTML instead")
	return cmd
}
