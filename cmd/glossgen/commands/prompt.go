package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/glossgen/internal/config"
	foundationerrors "git.home.luguber.info/inful/glossgen/internal/foundation/errors"
)

const (
	inputQuestion  = "Enter the file path of the glossary text file: "
	outputQuestion = "Enter the folder path to store the glossary HTML files in: "
)

// prompter asks for values on an interactive stream.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints question on its own line and reads one answer line.
func (p *prompter) ask(question, setting string) (string, error) {
	if _, err := fmt.Fprintln(p.out, question); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryRuntime, "read answer").Fatal().Build()
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return "", foundationerrors.ValidationError("no value entered").
			WithContext("setting", setting).
			Build()
	}
	return answer, nil
}

// promptMissing asks for the input file and output directory when neither a
// flag nor the configuration supplied them.
func promptMissing(p *prompter, cfg *config.Config) error {
	if strings.TrimSpace(cfg.Input.Path) == "" {
		v, err := p.ask(inputQuestion, "input.path")
		if err != nil {
			return err
		}
		cfg.Input.Path = v
	}
	if strings.TrimSpace(cfg.Output.Directory) == "" {
		v, err := p.ask(outputQuestion, "output.directory")
		if err != nil {
			return err
		}
		cfg.Output.Directory = v
	}
	return nil
}
