package cmd

import (
	"fmt"

	"github.com/bronystylecrazy/preventer/preventer"
	"github.com/spf13/cobra"
)

type ListCommand struct{}

func NewListCommand() *ListCommand {
	return &ListCommand{}
}

func (s *ListCommand) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered preventers",
		Args:  cobra.NoArgs,
		RunE:  s.Run,
	}
}

func (s *ListCommand) Run(cmd *cobra.Command, args []string) error {
	for _, name := range preventer.Names() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return err
		}
	}
	return nil
}
