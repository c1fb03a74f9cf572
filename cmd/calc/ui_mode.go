package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/kpgusev/calculator/internal/config"
)

type uiMode string

const (
	uiModeAuto uiMode = config.SwitchAuto
	uiModeOn   uiMode = config.SwitchOn
	uiModeOff  uiMode = config.SwitchOff
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode, out io.Writer) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(out)
	}
}
