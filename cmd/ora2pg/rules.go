package main

import (
	"strconv"

	"github.com/darianmavgo/ora2pg/rewriter"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List rewrite rules in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Priority", "Name", "Enabled", "Description"})
			table.SetAutoWrapText(false)
			for _, info := range rewriter.DescribeRules(cfg) {
				enabled := "yes"
				switch {
				case !info.Enabled && info.OptIn:
					enabled = "opt-in"
				case !info.Enabled:
					enabled = "no"
				}
				table.Append([]string{strconv.Itoa(info.Priority), info.Name, enabled, info.Description})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "HCL configuration file")
	return cmd
}
