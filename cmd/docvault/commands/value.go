package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseValue reads s as JSON, falling back to the raw string.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

// parseAmount parses an optional numeric argument; it defaults to 1.
func parseAmount(args []string) (float64, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", args[0])
	}
	return n, nil
}

// splitPair splits "field=value".
func splitPair(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return "", "", fmt.Errorf("expected field=value, got %q", s)
	}
	return k, v, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
