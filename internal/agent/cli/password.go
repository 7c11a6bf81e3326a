package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword читает пароль из stdin (первая строка) или с терминала без эха.
func readPassword(cmd *cobra.Command, prompt string, fromStdin bool) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := strings.TrimRight(line, "\r\n")
		if pw == "" {
			return "", errors.New("empty password on stdin")
		}
		return pw, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password or --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := strings.TrimSpace(string(b))
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

// passwordFlags: пароль флагом, из stdin или с терминала.
type passwordFlags struct {
	value     string
	fromStdin bool
}

func (p *passwordFlags) register(cmd *cobra.Command, name, usage string) {
	cmd.Flags().StringVar(&p.value, name, "", usage+" (prompted when omitted)")
	cmd.Flags().BoolVar(&p.fromStdin, name+"-stdin", false, "read "+name+" from the first line of stdin")
	cmd.MarkFlagsMutuallyExclusive(name, name+"-stdin")
}

func (p *passwordFlags) get(cmd *cobra.Command, prompt string) (string, error) {
	if p.value != "" {
		return p.value, nil
	}
	return ReadPassword(cmd, prompt, p.fromStdin)
}
