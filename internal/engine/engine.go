package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultBinary is the container engine invoked when none is configured
const DefaultBinary = "docker"

var (
	defaultHistoryArgs = []string{"history", "--no-trunc"}
	defaultImagesArgs  = []string{"images"}
)

// Output is what a container engine command produced
type Output struct {
	Stdout string
	Stderr string
}

// Options configures how the engine binary is invoked
type Options struct {
	Binary      string
	HistoryArgs []string
	ImagesArgs  []string
}

// Engine runs container engine commands as subprocesses
type Engine struct {
	binary      string
	historyArgs []string
	imagesArgs  []string
	logger      *log.Logger
}

// New creates an engine, filling unset options with docker defaults
func New(opts Options, logger *log.Logger) *Engine {
	e := &Engine{
		binary:      opts.Binary,
		historyArgs: opts.HistoryArgs,
		imagesArgs:  opts.ImagesArgs,
		logger:      logger,
	}
	if e.binary == "" {
		e.binary = DefaultBinary
	}
	if len(e.historyArgs) == 0 {
		e.historyArgs = defaultHistoryArgs
	}
	if len(e.imagesArgs) == 0 {
		e.imagesArgs = defaultImagesArgs
	}
	return e
}

// Images lists local images
func (e *Engine) Images(ctx context.Context) (Output, error) {
	return e.run(ctx, e.imagesArgs...)
}

// History returns the untruncated layer history of image, newest layer first
func (e *Engine) History(ctx context.Context, image string) (Output, error) {
	args := append(append([]string(nil), e.historyArgs...), image)
	return e.run(ctx, args...)
}

// run executes the binary and captures both streams. Output is returned even
// when the command fails so callers can continue with whatever was printed.
func (e *Engine) run(ctx context.Context, args ...string) (Output, error) {
	e.logger.Debug("running container engine", "command", e.binary+" "+strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		return out, fmt.Errorf("%s %s: %w", e.binary, args[0], err)
	}

	return out, nil
}
