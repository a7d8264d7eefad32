package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/findr-api/internal/domain"
	jwtinfra "github.com/findr-api/internal/infrastructure/jwt"
)

var (
	tokenUser string
	tokenRole string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed bearer token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenRole != domain.RoleStudent && tokenRole != domain.RoleStaff {
			return fmt.Errorf("role must be %s or %s", domain.RoleStudent, domain.RoleStaff)
		}
		// An ephemeral key would sign tokens no server accepts.
		p, err := jwtinfra.NewProvider(cfg)
		if err != nil {
			return err
		}
		token, err := p.Sign(tokenUser, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "user-1", "user id to embed")
	tokenCmd.Flags().StringVar(&tokenRole, "role", domain.RoleStudent, "STUDENT or STAFF")
}
