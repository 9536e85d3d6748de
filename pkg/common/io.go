package common

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/echocat/slf4g"
)

type settable interface {
	IsZero() bool
	Set(string) error
}

// Prompter asks for missing values on a terminal.
type Prompter struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
}

var DefaultPrompter = Prompter{
	Stdin:  os.Stdin,
	Stdout: os.Stderr,
}

func (this Prompter) RequestIfRequired(of settable, promptName string, canBeEmpty, isPassword bool) error {
	if !of.IsZero() {
		return nil
	}

	l, err := readline.NewEx(&readline.Config{
		Stdin:  this.Stdin,
		Stdout: this.Stdout,
	})
	if err != nil {
		return fmt.Errorf("could not read from terminal for prompt %q: %w", promptName, err)
	}
	defer func() {
		_ = l.Close()
	}()

	prompt := fmt.Sprintf("Enter %s: ", promptName)
	l.SetPrompt(prompt)
	if isPassword {
		l.SetMaskRune('*')
	}
	l.ResetHistory()
	for of.IsZero() {
		var line string
		if isPassword {
			var b []byte
			b, err = l.ReadPassword(prompt)
			line = string(b)
		} else {
			line, err = l.Readline()
		}
		if err != nil {
			return fmt.Errorf("could not read from terminal for prompt %q: %w", promptName, err)
		}
		if err := of.Set(line); err != nil {
			log.WithError(err).
				Error()
		}
		if canBeEmpty && of.IsZero() {
			return nil
		}
	}
	return nil
}

func (this Prompter) RequestString(of *string, promptName string, canBeEmpty, isPassword bool) error {
	buf := rawString(*of)
	if err := this.RequestIfRequired(&buf, promptName, canBeEmpty, isPassword); err != nil {
		return err
	}
	*of = string(buf)
	return nil
}

// RequestPositiveInt treats values below 1 as missing.
func (this Prompter) RequestPositiveInt(of *int, promptName string) error {
	buf := positiveInt(*of)
	if err := this.RequestIfRequired(&buf, promptName, false, false); err != nil {
		return err
	}
	*of = int(buf)
	return nil
}

type rawString []byte

func (v rawString) IsZero() bool {
	return len(v) == 0
}

func (v *rawString) Set(s string) error {
	*v = rawString(s)
	return nil
}

type positiveInt int

func (v positiveInt) IsZero() bool {
	return v < 1
}

func (v *positiveInt) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*v = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	if n < 1 {
		return fmt.Errorf("has to be at least 1: %d", n)
	}
	*v = positiveInt(n)
	return nil
}
