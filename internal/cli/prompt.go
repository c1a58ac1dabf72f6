package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrInputRequired is returned when a prompt is needed but input is disabled.
var ErrInputRequired = errors.New("interactive input required; pass the values as flags")

// Credentials is the answer to a login or register prompt.
type Credentials struct {
	Email    string
	Password string
	FullName string
}

// Prompter asks the user for input.
type Prompter interface {
	Credentials(title string, withName bool, prefill Credentials) (Credentials, error)
	Email(title string) (string, error)
}

type huhPrompter struct{}

func (huhPrompter) Credentials(title string, withName bool, c Credentials) (Credentials, error) {
	fields := []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&c.Email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&c.Password),
	}
	if withName {
		fields = append(fields, huh.NewInput().
			Title("Full name").
			Value(&c.FullName))
	}

	form := huh.NewForm(huh.NewGroup(fields...).Title(title))
	if err := form.Run(); err != nil {
		return Credentials{}, fmt.Errorf("prompt failed: %w", err)
	}
	return c, nil
}

func (huhPrompter) Email(title string) (string, error) {
	var email string
	input := huh.NewInput().
		Title(title).
		Placeholder("you@example.com").
		Value(&email)

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return email, nil
}

type noInputPrompter struct{}

func (noInputPrompter) Credentials(_ string, _ bool, c Credentials) (Credentials, error) {
	return c, ErrInputRequired
}

func (noInputPrompter) Email(string) (string, error) {
	return "", ErrInputRequired
}
