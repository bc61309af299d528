package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-hr-admin/internal/domain"
	"go-hr-admin/internal/employee"
	"go-hr-admin/internal/shared/connection"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func employeesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "employees", Short: "Inspect employees and link identity accounts"}
	cmd.AddCommand(employeesListCmd())
	cmd.AddCommand(employeesLinkCmd())
	return cmd
}

func openRepository() (employee.Repository, func(), error) {
	db, err := connection.ConnectGORMWithRetry(databaseConfig())
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return employee.NewRepository(db), closeFn, nil
}

func employeesListCmd() *cobra.Command {
	var (
		department string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := openRepository()
			if err != nil {
				return err
			}
			defer closeFn()

			rows, total, err := repo.List(cmd.Context(), employee.ListFilter{Limit: limit, Department: department})
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(map[string]any{"total": total, "employees": rows})
			}
			renderEmployees(cmd.OutOrStdout(), rows, total)
			return nil
		},
	}
	cmd.Flags().StringVar(&department, "department", "", "filter by department")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows")
	return cmd
}

func renderEmployees(w io.Writer, rows []employee.Employee, total int64) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Code", "Name", "Email", "Department", "Role", "Status", "Linked"})
	for _, e := range rows {
		linked := "-"
		if e.FirebaseUID != nil && *e.FirebaseUID != "" {
			linked = "yes"
		}
		tw.AppendRow(table.Row{e.EmployeeCode, e.Name, e.Email, e.Department, domain.RoleName(e.RoleID), e.Status, linked})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "Total", total})
	tw.Render()
}

func employeesLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <employee-code> <uid>",
		Short: "Attach an identity uid (Firebase or JWT sub) to an employee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := openRepository()
			if err != nil {
				return err
			}
			defer closeFn()

			e, err := linkEmployee(cmd.Context(), repo, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "linked %s (%s) to %s\n", e.EmployeeCode, e.Email, *e.FirebaseUID)
			return nil
		},
	}
}

func linkEmployee(ctx context.Context, repo employee.Repository, code, uid string) (*employee.Employee, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, errors.New("uid must not be empty")
	}
	code = strings.ToUpper(strings.TrimSpace(code))

	e, err := repo.FindByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("employee %s not found", code)
	}
	if err != nil {
		return nil, err
	}

	e.FirebaseUID = &uid
	if err := repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
