package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-enhancer/internal/config"
)

var hashpwCost int

var hashpwCmd = &cobra.Command{
	Use:   "hashpw [password]",
	Short: "Hash an operator password for OPERATOR_PASSWORD_HASH",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHashpw,
}

func init() {
	hashpwCmd.Flags().IntVar(&hashpwCost, "cost", 12, "bcrypt cost (10-14)")
	rootCmd.AddCommand(hashpwCmd)
}

func runHashpw(cmd *cobra.Command, args []string) error {
	operator := &config.OperatorConfig{
		Email:      "placeholder@local",
		BcryptCost: hashpwCost,
	}

	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := operator.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
