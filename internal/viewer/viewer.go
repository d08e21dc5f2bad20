// Package viewer validates downloaded files as images and hands them to a desktop viewer.
package viewer

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"runtime"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Viewer displays a local image file.
type Viewer interface {
	Show(ctx context.Context, path string) error
}

// Decode reads the image header and pixels and returns the detected format.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: not a valid image: %w", path, err)
	}
	return img, format, nil
}

// Launcher decodes the file and then runs an external viewer program on it.
type Launcher struct {
	// Command overrides the platform default (xdg-open / open / start).
	Command string
	run     func(ctx context.Context, name string, args ...string) error
}

func NewLauncher(command string) *Launcher {
	return &Launcher{Command: strings.Join(strings.Fields(command), " "), run: runCommand}
}

func (l *Launcher) Show(ctx context.Context, path string) error {
	if _, _, err := Decode(path); err != nil {
		return err
	}
	name, args := l.argv(path)
	if err := l.run(ctx, name, args...); err != nil {
		return fmt.Errorf("viewer %s: %w", name, err)
	}
	return nil
}

func (l *Launcher) argv(path string) (string, []string) {
	if parts := strings.Fields(l.Command); len(parts) > 0 {
		return parts[0], append(parts[1:], path)
	}
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
