package helpers

import (
	"strings"

	"github.com/mdp/qrterminal/v3"
)

// RenderQR renders text as a half-block QR code suitable for the terminal
func RenderQR(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	qrterminal.GenerateHalfBlock(text, qrterminal.L, &b)
	return strings.TrimRight(b.String(), "\n")
}
