package commands

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
)

func getCmd() *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Print the value at path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.Open()
			if err != nil {
				return err
			}
			var d any
			if def != "" {
				d = parseValue(def)
			}
			return printJSON(cmd.OutOrStdout(), s.Get(args[0], d))
		},
	}
	cmd.Flags().StringVar(&def, "default", "", "value printed when path is absent")
	return cmd
}

func hasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has <path>",
		Short: "Print whether a value exists at path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.Open()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.Has(args[0]))
			return err
		},
	}
}

func keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [path]",
		Short: "List the keys of the mapping at path (the root by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.Open()
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			for _, k := range s.Keys(path) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), k); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func stateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the whole document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appCtx.Open()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s.GetState())
		},
	}
}

// find <path> --where author="John" --match title=^Hello
func findCmd() *cobra.Command {
	var (
		where []string
		match []string
		one   bool
	)
	cmd := &cobra.Command{
		Use:   "find <path>",
		Short: "Print the elements of the sequence at path matching every criterion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := map[string]any{}
			for _, w := range where {
				k, v, err := splitPair(w)
				if err != nil {
					return err
				}
				q[k] = parseValue(v)
			}
			for _, m := range match {
				k, v, err := splitPair(m)
				if err != nil {
					return err
				}
				re, err := regexp.Compile(v)
				if err != nil {
					return fmt.Errorf("--match %s: %w", k, err)
				}
				q[k] = re
			}

			s, err := appCtx.Open()
			if err != nil {
				return err
			}
			if one {
				v, ok, err := s.FindOne(args[0], q)
				if err != nil {
					return err
				}
				if !ok {
					return printJSON(cmd.OutOrStdout(), nil)
				}
				return printJSON(cmd.OutOrStdout(), v)
			}
			found, err := s.Find(args[0], q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), found)
		},
	}
	cmd.Flags().StringArrayVar(&where, "where", nil, "field=value equality criterion (value is JSON)")
	cmd.Flags().StringArrayVar(&match, "match", nil, "field=regexp criterion on string fields")
	cmd.Flags().BoolVar(&one, "one", false, "print only the first match, or null")
	return cmd
}
