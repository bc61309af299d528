package main

import (
	"errors"
	"fmt"
	"time"

	"go-hr-admin/internal/identity"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func tokenCmd() *cobra.Command {
	var (
		uid   string
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 token for AUTH_PROVIDER=jwt",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := viper.GetString("jwt-secret")
			if secret == "" {
				return errors.New("--jwt-secret (or HR_JWT_SECRET) is required")
			}
			if uid == "" {
				return errors.New("--uid is required")
			}
			token, err := identity.NewJWTVerifier(secret).Issue(uid, email, ttl)
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(map[string]any{"token": token, "expiresIn": ttl.String()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "identity uid, must match employees.firebase_uid")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	cmd.Flags().String("jwt-secret", "", "shared HS256 secret")
	_ = viper.BindPFlag("jwt-secret", cmd.Flags().Lookup("jwt-secret"))
	return cmd
}
