// Package ui holds the interactive bits of check-secunet.
package ui

import (
	"fmt"

	"github.com/Iilun/survey/v2"
)

// askOne is swapped in tests.
var askOne = survey.AskOne

// PromptPassword asks for the konnektor password of username without echoing it.
func PromptPassword(username string) (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}

	var password string
	prompt := &survey.Password{
		Message: fmt.Sprintf("Konnektor password for %s:", username),
	}
	if err := askOne(prompt, &password); err != nil {
		return "", fmt.Errorf("password prompt failed: %w", err)
	}
	return password, nil
}
