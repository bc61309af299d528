package main

import (
	"io"
	"strings"

	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/rbac"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type roleRow struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Inherits    []string `json:"inherits"`
	Permissions []string `json:"permissions"`
}

func rolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Show each role's effective permissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := roleRows(viper.GetString("rbac-policy-path"))
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(rows)
			}
			renderRoles(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	cmd.Flags().String("policy", "", "policy YAML (defaults to the embedded policy)")
	_ = viper.BindPFlag("rbac-policy-path", cmd.Flags().Lookup("policy"))
	return cmd
}

func roleRows(policyPath string) ([]roleRow, error) {
	policy, err := rbac.LoadPolicy(policyPath)
	if err != nil {
		return nil, err
	}
	svc, err := rbac.NewService(policy)
	if err != nil {
		return nil, err
	}

	rows := make([]roleRow, 0, len(domain.Roles))
	for _, r := range domain.Roles {
		perms := svc.Permissions(r.Name)
		var inherits []string
		if rp, ok := policy.Roles[r.Name]; ok {
			inherits = rp.Inherits
		}
		rows = append(rows, roleRow{ID: r.ID, Name: r.Name, Inherits: inherits, Permissions: perms})
	}
	return rows, nil
}

func renderRoles(w io.Writer, rows []roleRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"ID", "Role", "Inherits", "Permissions"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.ID, r.Name, strings.Join(r.Inherits, ", "), strings.Join(r.Permissions, "\n")})
		tw.AppendSeparator()
	}
	tw.Render()
}
