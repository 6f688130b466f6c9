package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/slug/pkg/slug"
)

// tableDump is the YAML layout printed by the tables command. Either map
// can be fed back through --charmap.
type tableDump struct {
	CharMap      slug.CharMap      `yaml:"charmap"`
	MultiCharMap slug.MultiCharMap `yaml:"multicharmap"`
}

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the substitution tables as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.logger()
			if err != nil {
				return err
			}
			store, err := a.newStore(l)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(tableDump{
				CharMap:      store.CharMap(),
				MultiCharMap: store.MultiCharMap(),
			}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
