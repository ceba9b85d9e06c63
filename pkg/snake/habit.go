// Package snake walks the user through command input with promptui.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/consistency/pkg/habit"
)

// HabitAnswers is what PromptHabit collected.
type HabitAnswers struct {
	Name string
	Type habit.Type
	Unit string
}

// Prompter holds the streams prompts read from and write to.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

var textTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// PromptHabit asks for a name, a type and, for numeric types, a unit.
func (p Prompter) PromptHabit() (HabitAnswers, error) {
	var a HabitAnswers

	name, err := p.text("Habit name", "", func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errors.New("name required")
		}
		return nil
	})
	if err != nil {
		return a, err
	}
	a.Name = strings.TrimSpace(name)

	if a.Type, err = p.PromptType(); err != nil {
		return a, err
	}

	if a.Type.Numeric() {
		unit, err := p.text("Unit (optional)", "", nil)
		if err != nil {
			return a, err
		}
		a.Unit = strings.TrimSpace(unit)
	}
	return a, nil
}

type typeItem struct {
	Type habit.Type
	Name string
}

// PromptType offers the habit types by display name.
func (p Prompter) PromptType() (habit.Type, error) {
	items := make([]typeItem, 0, len(habit.AllTypes()))
	for _, t := range habit.AllTypes() {
		items = append(items, typeItem{Type: t, Name: t.DisplayName()})
	}

	prompt := promptui.Select{
		HideHelp: true,
		Label:    "Type",
		Items:    items,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ .Name | bold }}",
			Inactive: "   {{ .Name }}",
			Selected: "{{ .Name | bold }}",
		},
		Stdin:  p.stdin(),
		Stdout: p.stdout(),
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt type: %w", err)
	}
	return items[i].Type, nil
}

// PromptValue asks for a number and normalizes it for t.
func (p Prompter) PromptValue(t habit.Type, unit string) (habit.NumericValue, error) {
	label := "Value"
	if unit != "" {
		label = fmt.Sprintf("Value (%s)", unit)
	}
	text, err := p.text(label, "", func(input string) error {
		_, err := habit.ParseValue(t, input)
		return err
	})
	if err != nil {
		return habit.NumericValue{}, err
	}
	return habit.ParseValue(t, text)
}

func (p Prompter) text(label, def string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: textTemplates,
		Validate:  validate,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	result, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", strings.ToLower(label), err)
	}
	return result, nil
}

func (p Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopWriteCloser{p.Out}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
