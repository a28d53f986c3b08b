// Package configcmd prints the effective configuration.
package configcmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tickettracker/internal/interfaces/cli/clienv"
)

const redacted = "********"

var flags clienv.Flags

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	flags.Register(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := flags.Load(); err != nil {
				return err
			}
			out, err := Render(viper.AllSettings())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	})

	return cmd
}

// Render masks secrets in settings and encodes them as YAML.
func Render(settings map[string]any) (string, error) {
	b, err := yaml.Marshal(redact(settings))
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(b), nil
}

func redact(m map[string]any) map[string]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(m))
	for _, k := range keys {
		switch v := m[k].(type) {
		case map[string]any:
			out[k] = redact(v)
		default:
			if isSecret(k) && fmt.Sprint(v) != "" {
				out[k] = redacted
			} else {
				out[k] = v
			}
		}
	}
	return out
}

func isSecret(key string) bool {
	key = strings.ToLower(key)
	return strings.Contains(key, "password") || strings.Contains(key, "secret")
}
