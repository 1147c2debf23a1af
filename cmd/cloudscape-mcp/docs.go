package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/cloudscape-mcp/internal/docs"
	"github.com/dshills/cloudscape-mcp/internal/validate"
)

func newDocsCmd(opts *options) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs <componentId>",
		Short: "Print component documentation",
		Long: `Print the full documentation of a component as markdown.
On a terminal the markdown is rendered; use --raw to disable rendering.`,
		Example: "  cloudscape-mcp docs table",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := validate.ID(validate.KindComponent, id); err != nil {
				return err
			}

			srv, err := openCatalog(cmd, opts)
			if err != nil {
				return err
			}
			defer srv.Close()

			md, err := docs.NewProvider(srv.Registry()).ComponentMarkdown(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !raw && isTerminal(out) {
				rendered, err := glamour.Render(md, "dark")
				if err == nil {
					md = rendered
				}
			}
			_, err = fmt.Fprint(out, md)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal rendering")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
