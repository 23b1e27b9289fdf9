package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

// InputFile in Command.Args is replaced by the path of a temporary file
// holding the document.
const InputFile = "{input}"

// Command converts a document by running an external program and reading
// its standard output.
type Command struct {
	Name string
	Args []string
}

// Convert writes data to a temporary file and runs the command on it.
// A missing program is ErrUnsupportedFormat.
func (c Command) Convert(ctx context.Context, data []byte) (string, error) {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %s not installed", internalerr.ErrUnsupportedFormat, c.Name)
	}

	tmp, err := os.CreateTemp("", "resumex-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		if a == InputFile {
			a = tmp.Name()
		}
		args[i] = a
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s: %w: %s", c.Name, err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("%s: %w", c.Name, err)
	}
	return stdout.String(), nil
}
