package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"dockerconvert/internal/dockerfile"
	"dockerconvert/internal/engine"
	"dockerconvert/internal/images"
	"dockerconvert/internal/secrets"
	"dockerconvert/internal/types"
	"dockerconvert/internal/writer"

	"github.com/charmbracelet/log"
)

// Engine supplies raw image listing and history text
type Engine interface {
	Images(ctx context.Context) (engine.Output, error)
	History(ctx context.Context, image string) (engine.Output, error)
}

// Selector asks the user to pick a 1-based entry
type Selector interface {
	Select(ctx context.Context, question string, max int) (int, error)
}

// Converter reconstructs a Dockerfile from the history of a local image
type Converter struct {
	engine  Engine
	parser  *dockerfile.Parser
	writer  *writer.Writer
	scanner *secrets.Scanner
	out     io.Writer
	logger  *log.Logger
}

// Options holds the collaborators of a Converter. Scanner may be nil to skip
// the secret scan.
type Options struct {
	Engine  Engine
	Parser  *dockerfile.Parser
	Writer  *writer.Writer
	Scanner *secrets.Scanner
	Out     io.Writer
	Logger  *log.Logger
}

// Result summarizes one conversion
type Result struct {
	Image        string
	Instructions []string
	Content      string
	Findings     []types.Finding
	Saved        *writer.Result
}

// New creates a converter
func New(opts Options) *Converter {
	return &Converter{
		engine:  opts.Engine,
		parser:  opts.Parser,
		writer:  opts.Writer,
		scanner: opts.Scanner,
		out:     opts.Out,
		logger:  opts.Logger,
	}
}

// SelectImage prints the local images and asks the user to pick one
func (c *Converter) SelectImage(ctx context.Context, selector Selector) (string, error) {
	output, err := c.engine.Images(ctx)
	c.reportEngine("list images", output, err)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	listing, err := images.ParseListing(output.Stdout)
	if err != nil {
		return "", err
	}
	if listing.Len() == 0 {
		return "", errors.New("no local images found")
	}

	fmt.Fprintln(c.out, "Local images:")
	listing.Print(c.out)

	n, err := selector.Select(ctx, "Enter the number of the image to convert", listing.Len())
	if err != nil {
		return "", err
	}

	image, err := listing.Name(n)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(c.out, "[%s]\n\n", image)

	return image, nil
}

// Convert fetches the history of image, prints the reconstructed Dockerfile
// and saves it. Engine failures and a malformed history are logged and the
// conversion continues with what is available.
func (c *Converter) Convert(ctx context.Context, image string) (*Result, error) {
	if err := images.ValidateReference(image); err != nil {
		c.logger.Warn("image reference may not resolve", "image", image, "err", err)
	}

	output, err := c.engine.History(ctx, image)
	c.reportEngine("get image history", output, err)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	instructions, err := c.parser.Parse(output.Stdout)
	if err != nil {
		c.logger.Error("Could not parse image history", "image", image, "err", err)
		instructions = nil
	}
	c.logger.Debug("parsed image history", "image", image, "instructions", len(instructions))

	result := &Result{
		Image:        image,
		Instructions: instructions,
		Content:      dockerfile.Generate(instructions, image),
	}

	if c.scanner != nil {
		result.Findings = c.scanner.Scan(instructions)
		for _, f := range result.Findings {
			c.logger.Warn(f.Message, "severity", f.Severity, "instruction", f.Instruction, "context", f.Context)
		}
	}

	fmt.Fprintln(c.out, result.Content)

	saved, err := c.writer.Save(ctx, result.Content, image)
	if err != nil {
		return result, fmt.Errorf("failed to save Dockerfile: %w", err)
	}
	result.Saved = saved

	if saved.Overwritten {
		c.logger.Info("Dockerfile replaced", "file", saved.Path)
	} else {
		c.logger.Info("Dockerfile saved", "file", saved.Path)
	}

	return result, nil
}

func (c *Converter) reportEngine(action string, output engine.Output, err error) {
	if err != nil {
		c.logger.Error("Container engine failed", "action", action, "err", err)
	}
	if stderr := strings.TrimSpace(output.Stderr); stderr != "" {
		c.logger.Error("Container engine reported an error", "action", action, "stderr", stderr)
	}
}
