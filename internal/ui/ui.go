// Package ui provides an fzf-based picker. Items are piped to fzf as plain
// text; nothing from remote metadata is ever shell-interpreted.
package ui

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Pick presents items via fzf and returns the chosen index.
func Pick(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("nothing to pick from")
	}

	fzfPath, err := exec.LookPath("fzf")
	if err != nil {
		return -1, fmt.Errorf("fzf not found in PATH: %w", err)
	}

	// Index-prefix each line so the selection maps back reliably even when
	// two items render identically.
	var input strings.Builder
	for i, item := range items {
		fmt.Fprintf(&input, "%d\t%s\n", i, item)
	}

	cmd := exec.Command(fzfPath,
		"--prompt", prompt+" > ",
		"--reverse",
		"--no-multi",
		"--with-nth", "2..",
		"--delimiter", "\t",
	)
	cmd.Stdin = strings.NewReader(input.String())
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return -1, fmt.Errorf("selection cancelled: %w", err)
	}

	line := strings.TrimSpace(stdout.String())
	prefix, _, ok := strings.Cut(line, "\t")
	if !ok {
		return -1, fmt.Errorf("unexpected fzf output %q", line)
	}

	idx, err := strconv.Atoi(prefix)
	if err != nil || idx < 0 || idx >= len(items) {
		return -1, fmt.Errorf("bad selection index %q", prefix)
	}

	return idx, nil
}
