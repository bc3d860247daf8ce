package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/Veraticus/coinpurse/internal/form"
	"github.com/Veraticus/coinpurse/internal/recovery"
	"github.com/Veraticus/coinpurse/internal/validation"
	"golang.org/x/term"
)

// MaxAttempts bounds how often a single field is re-asked.
const MaxAttempts = 3

// ErrTooManyAttempts is returned when a field stays invalid after MaxAttempts.
var ErrTooManyAttempts = errors.New("too many invalid attempts")

// SecretReader reads one line without echoing it.
type SecretReader func(ctx context.Context) (string, error)

// Prompter fills forms line by line from a terminal.
type Prompter struct {
	writer io.Writer
	reader *NonBlockingReader
	secret SecretReader
}

// NewPrompter creates a prompter with the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// SetSecretReader makes secret fields read through r instead of the line
// reader, so passwords are not echoed.
func (p *Prompter) SetSecretReader(r SecretReader) {
	p.secret = r
}

// TerminalSecretReader reads from the terminal fd with echo disabled. The
// terminal state is restored when ctx is canceled mid-read.
func TerminalSecretReader(fd int) SecretReader {
	return func(ctx context.Context) (string, error) {
		if ctx.Err() != nil {
			return "", ErrInputCancelled
		}
		state, err := term.GetState(fd)
		if err != nil {
			return "", fmt.Errorf("failed to read terminal state: %w", err)
		}

		type result struct {
			err   error
			value []byte
		}
		resultCh := make(chan result, 1)
		go func() {
			value, err := term.ReadPassword(fd)
			resultCh <- result{value: value, err: err}
		}()

		select {
		case <-ctx.Done():
			_ = term.Restore(fd, state)
			return "", ErrInputCancelled
		case res := <-resultCh:
			if res.err != nil {
				return "", fmt.Errorf("failed to read secret: %w", res.err)
			}
			return strings.TrimSpace(string(res.value)), nil
		}
	}
}

func (p *Prompter) readField(ctx context.Context, field validation.Field) (string, error) {
	if p.secret == nil || !field.Secret() {
		return p.reader.ReadLine(ctx)
	}
	line, err := p.secret(ctx)
	// The hidden input swallowed the newline.
	_, _ = fmt.Fprintln(p.writer)
	return line, err
}

// Fill asks for every active field of f. Each answer is validated on blur and
// the field is re-asked with its inline error until it passes.
func (p *Prompter) Fill(ctx context.Context, f *form.Controller[validation.Field]) error {
	for _, field := range f.Fields() {
		if err := p.fillField(ctx, f, field); err != nil {
			return err
		}
	}
	return nil
}

func (p *Prompter) fillField(ctx context.Context, f *form.Controller[validation.Field], field validation.Field) error {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(field.Label())); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.readField(ctx, field)
		if err != nil {
			return err
		}

		f.OnChange(field, line)
		f.OnBlur(field)
		msg := f.Error(field)
		if msg == "" {
			return nil
		}
		if _, err := fmt.Fprintln(p.writer, "  "+FormatError(msg)); err != nil {
			return fmt.Errorf("failed to write field error: %w", err)
		}
	}
	return fmt.Errorf("%w for %s", ErrTooManyAttempts, field.Label())
}

var stepTitles = map[recovery.State]string{
	recovery.AwaitingEmail:       "Forgot password",
	recovery.AwaitingOTP:         "Enter verification code",
	recovery.AwaitingNewPassword: "Choose a new password",
}

// RunRecovery walks the wizard to completion. A failed step prints its notice
// and asks again; interrupting or closing input aborts the flow.
func (p *Prompter) RunRecovery(ctx context.Context, w *recovery.Wizard) error {
	for !w.Done() {
		state := w.State()
		if _, err := fmt.Fprintln(p.writer, FormatTitle(stepTitles[state])); err != nil {
			return fmt.Errorf("failed to write step title: %w", err)
		}
		if err := p.Fill(ctx, w.Form()); err != nil {
			return err
		}

		if err := w.Submit(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !PrintFieldErrors(p.writer, err) {
				_, _ = fmt.Fprintln(p.writer, FormatError(common.Notice(err)))
			}
			continue
		}

		if notice := w.Notice(); notice != "" {
			_, _ = fmt.Fprintln(p.writer, FormatSuccess(notice))
		}
	}
	return nil
}
