package helpers

import (
	"errors"
	"fmt"
	"image/color"
	"math/big"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
	"github.com/shopspring/decimal"

	"kaspa-wallet-tui/wallet"
)

// ShortenAddr shortens an address for display, keeping the network prefix
func ShortenAddr(addr string) string {
	prefix := ""
	if i := strings.IndexByte(addr, ':'); i >= 0 {
		prefix, addr = addr[:i+1], addr[i+1:]
	}
	if len(addr) < 14 {
		return prefix + addr
	}
	return prefix + addr[:8] + "…" + addr[len(addr)-6:]
}

// AddressStatus is the result of checking a destination address.
type AddressStatus uint8

const (
	AddressNone AddressStatus = iota
	AddressValid
	AddressNetworkMismatch
	AddressInvalid
)

func (s AddressStatus) String() string {
	switch s {
	case AddressValid:
		return "valid"
	case AddressNetworkMismatch:
		return "address is for a different network"
	case AddressInvalid:
		return "invalid address"
	default:
		return ""
	}
}

var addressRe = regexp.MustCompile(`^(kaspa|kaspatest|kaspadev|kaspasim):[qpzry9x8gf2tvdw0s3jn54khce6mua7l]{61,63}$`)

// ValidateAddress checks the shape and network prefix of a payment address
func ValidateAddress(addr string, network wallet.NetworkID) AddressStatus {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return AddressNone
	}
	m := addressRe.FindStringSubmatch(addr)
	if m == nil {
		return AddressInvalid
	}
	if want := network.AddressPrefix(); want != "" && m[1] != want {
		return AddressNetworkMismatch
	}
	return AddressValid
}

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrTooPrecise     = errors.New("amount has more than 8 decimal places")
	ErrAmountTooLarge = errors.New("amount is too large")
)

// ParseSompi converts a KAS amount typed by the user into sompi. An empty
// string yields ok=false and no error.
func ParseSompi(s string) (sompi uint64, ok bool, err error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return 0, false, ErrNegativeAmount
	}
	scaled := d.Shift(8)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, false, ErrTooPrecise
	}
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, false, ErrAmountTooLarge
	}
	return bi.Uint64(), true, nil
}

// SompiToDecimal converts sompi to KAS
func SompiToDecimal(sompi uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(sompi), -8)
}

// FormatSompi formats sompi as a KAS amount without trailing zeros
func FormatSompi(sompi uint64) string {
	return SompiToDecimal(sompi).String()
}

// Suffix returns the currency ticker for the network
func Suffix(network wallet.NetworkID) string {
	switch network {
	case wallet.Mainnet, "":
		return "KAS"
	case wallet.Devnet:
		return "DKAS"
	case wallet.Simnet:
		return "SKAS"
	default:
		return "TKAS"
	}
}

// FormatKAS formats sompi with the network ticker
func FormatKAS(sompi uint64, network wallet.NetworkID) string {
	return FormatSompi(sompi) + " " + Suffix(network)
}

// FormatFeeText renders a fee amount the way it is pre-filled in the fee input
func FormatFeeText(sompi uint64) string {
	kas := SompiToDecimal(sompi)
	switch {
	case kas.LessThan(decimal.New(1, -4)):
		return kas.String()
	case kas.LessThan(decimal.New(1, -2)):
		return kas.StringFixed(6)
	default:
		return kas.StringFixed(4)
	}
}

// FormatDurationEstimate renders a confirmation time estimate
func FormatDurationEstimate(seconds float64) string {
	minutes := uint64(seconds / 60)
	secs := uint64(seconds)
	switch {
	case secs == 1:
		return fmt.Sprintf("< %d second", secs)
	case secs < 60:
		return fmt.Sprintf("< %d seconds", secs)
	case minutes == 1:
		return fmt.Sprintf("< %d minute", minutes)
	default:
		return fmt.Sprintf("< %d minutes", minutes)
	}
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), len(runes))
	return rainbow(lipgloss.NewStyle(), runes, blends)
}

func rainbow(baseStyle lipgloss.Style, runes []rune, colors []color.Color) string {
	var b strings.Builder
	for i, c := range runes {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		b.WriteString(baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c)))
	}
	return b.String()
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
