package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// promptLine reads one line from stdin after printing the label. Used when a
// command is missing a flag value and the user is at a terminal.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
