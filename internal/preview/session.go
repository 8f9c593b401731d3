package preview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Editor lets the operator change text and returns the result.
type Editor interface {
	Edit(ctx context.Context, text string) (string, error)
}

// ExternalEditor runs a terminal editor on a temporary .json file.
type ExternalEditor struct {
	Command string
}

// NewExternalEditor uses command, then $EDITOR, then vi.
func NewExternalEditor(command string) *ExternalEditor {
	if command == "" {
		command = os.Getenv("EDITOR")
	}
	if command == "" {
		command = "vi"
	}
	return &ExternalEditor{Command: command}
}

func (e *ExternalEditor) Edit(ctx context.Context, text string) (string, error) {
	args := strings.Fields(e.Command)
	if len(args) == 0 {
		return "", errors.New("no editor command")
	}

	dir, err := os.MkdirTemp("", "pagefx-edit")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "preview.json")
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run editor %s: %w", args[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Session drives an overlay from an Editor until the update lands or the
// operator empties the buffer.
type Session struct {
	Overlay *Overlay
	Editor  Editor
	// ShowAll, when set, switches to the page at this path right after
	// opening.
	ShowAll string
}

// Run opens t and loops edit and update. Invalid JSON sends the operator
// back to the editor with their text. An empty buffer cancels.
func (s *Session) Run(ctx context.Context, t Target) error {
	o := s.Overlay
	if err := o.Open(ctx, t); err != nil {
		return err
	}
	if s.ShowAll != "" {
		if err := o.ShowAll(ctx, s.ShowAll); err != nil {
			return err
		}
	}

	for o.State() == Open {
		text, err := s.Editor.Edit(ctx, o.Text())
		if err != nil {
			o.Cancel()
			return err
		}
		if strings.TrimSpace(text) == "" {
			o.Cancel()
			return nil
		}
		err = o.Update(ctx, text)
		if errors.Is(err, ErrInvalidJSON) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
