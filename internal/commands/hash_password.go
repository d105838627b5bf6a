package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"propdesk/internal/auth"
	"propdesk/internal/prompt"
)

func HashPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the ADMIN_PASSWORD_HASH value for a password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useBcrypt, _ := cmd.Flags().GetBool("bcrypt")

			// prompt on stderr so stdout carries only the hash
			p := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr())
			secret, err := p.ReadSecret(cmd.Context(), "Password: ")
			if err != nil {
				return err
			}
			if secret == "" {
				return errors.New("password must not be empty")
			}

			hash := auth.HashSHA256(secret)
			if useBcrypt {
				if hash, err = auth.HashBcrypt(secret); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().Bool("bcrypt", false, "Use bcrypt instead of SHA-256")

	return cmd
}
