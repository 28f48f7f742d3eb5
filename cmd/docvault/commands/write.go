package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"docvault"
)

// mutate opens the store, applies fn and saves the result.
func mutate(fn func(s *docvault.Store) error) error {
	s, err := appCtx.Open()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return appCtx.Commit(s)
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Store a value at path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(func(s *docvault.Store) error {
				return s.Set(args[0], parseValue(args[1]))
			})
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "Remove the value at path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(func(s *docvault.Store) error {
				s.Delete(args[0])
				return nil
			})
		},
	}
}

func pushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push <path> <value>",
		Short: "Append a value to the sequence at path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(func(s *docvault.Store) error {
				return s.Push(args[0], parseValue(args[1]))
			})
		},
	}
}

func incrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "incr <path> [amount]",
		Short: "Add amount (default 1) to the number at path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseAmount(args[1:])
			if err != nil {
				return err
			}
			return mutate(func(s *docvault.Store) error {
				return s.Increment(args[0], n)
			})
		},
	}
}

func decrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decr <path> [amount]",
		Short: "Subtract amount (default 1) from the number at path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseAmount(args[1:])
			if err != nil {
				return err
			}
			return mutate(func(s *docvault.Store) error {
				return s.Decrement(args[0], n)
			})
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(func(s *docvault.Store) error {
				s.Clear()
				return nil
			})
		},
	}
}

func destroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy",
		Short: "Delete the document file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.Open()
			if err != nil {
				return err
			}
			if err := s.Destroy(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", s.Path())
			return err
		},
	}
}
