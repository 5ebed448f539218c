package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

// sample arguments used to render each default message
var sampleArgs = map[string]any{
	rules.NameMinLength: 8,
	rules.NameMaxLength: 64,
	rules.NameMin:       18,
	rules.NameMax:       120,
	rules.NameFileSize:  int64(512),
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules with their default messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		kit, err := formkit.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		msgs := kit.Engine().Messages()
		names := make([]string, 0, len(msgs))
		for name := range msgs {
			names = append(names, name)
		}
		slices.Sort(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "RULE\tMESSAGE (%s)\n", strings.ToUpper(kit.Engine().Language()))
		for _, name := range names {
			arg, ok := sampleArgs[name]
			if !ok {
				arg = true
			}
			fmt.Fprintf(w, "%s\t%s\n", name, msgs[name].Render("", arg))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
