package helpers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kaspa-wallet-tui/wallet"
)

const testAddr = "kaspatest:qqkl0ct62rv6dz74pff2kx5sfyasl4z28uekevau23g877r5gt6userwyrmtt"

func TestParseSompi(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		ok      bool
		wantErr error
	}{
		{in: "10", want: 10 * wallet.SompiPerKaspa, ok: true},
		{in: " 0.5 ", want: 50_000_000, ok: true},
		{in: "0.00000001", want: 1, ok: true},
		{in: "1,000", want: 1000 * wallet.SompiPerKaspa, ok: true},
		{in: "", ok: false},
		{in: "-1", wantErr: ErrNegativeAmount},
		{in: "0.000000001", wantErr: ErrTooPrecise},
		{in: "1000000000000000", wantErr: ErrAmountTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok, err := ParseSompi(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}

	_, _, err := ParseSompi("abc")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid amount")
}

func TestFormatSompi(t *testing.T) {
	require.Equal(t, "10", FormatSompi(10*wallet.SompiPerKaspa))
	require.Equal(t, "0.00000001", FormatSompi(1))
	require.Equal(t, "1.5", FormatSompi(150_000_000))
	require.Equal(t, "0", FormatSompi(0))
	require.Equal(t, "1.5 TKAS", FormatKAS(150_000_000, wallet.Testnet11))
	require.Equal(t, "1.5 KAS", FormatKAS(150_000_000, wallet.Mainnet))
}

func TestFormatFeeText(t *testing.T) {
	require.Equal(t, "0.00001", FormatFeeText(1000))
	require.Equal(t, "0.001000", FormatFeeText(100_000))
	require.Equal(t, "0.0200", FormatFeeText(2_000_000))
}

func TestFormatDurationEstimate(t *testing.T) {
	require.Equal(t, "< 1 second", FormatDurationEstimate(1))
	require.Equal(t, "< 0 seconds", FormatDurationEstimate(0.4))
	require.Equal(t, "< 45 seconds", FormatDurationEstimate(45.9))
	require.Equal(t, "< 1 minute", FormatDurationEstimate(90))
	require.Equal(t, "< 3 minutes", FormatDurationEstimate(200))
}

func TestValidateAddress(t *testing.T) {
	require.Equal(t, AddressNone, ValidateAddress("  ", wallet.Testnet10))
	require.Equal(t, AddressValid, ValidateAddress(testAddr, wallet.Testnet10))
	require.Equal(t, AddressNetworkMismatch, ValidateAddress(testAddr, wallet.Mainnet))
	require.Equal(t, AddressInvalid, ValidateAddress("kaspatest:xyz", wallet.Testnet10))
	require.Equal(t, AddressInvalid, ValidateAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", wallet.Mainnet))
}

func TestShortenAddr(t *testing.T) {
	short := ShortenAddr(testAddr)
	require.True(t, strings.HasPrefix(short, "kaspatest:qqkl0ct6…"))
	require.True(t, strings.HasSuffix(short, "wyrmtt"))
	require.Equal(t, "abc", ShortenAddr("abc"))
}

func TestLogBufferTrimsOldestLines(t *testing.T) {
	b := NewLogBuffer(64)
	for i := 0; i < 20; i++ {
		_, err := fmt.Fprintf(b, "line %02d\n", i)
		require.NoError(t, err)
	}
	require.LessOrEqual(t, b.Len(), 64)
	out := b.String()
	require.True(t, strings.HasSuffix(out, "line 19\n"))
	require.True(t, strings.HasPrefix(out, "line "))

	b.Reset()
	require.Zero(t, b.Len())
}

func TestRenderQR(t *testing.T) {
	require.Empty(t, RenderQR(""))
	require.NotEmpty(t, RenderQR(testAddr))
}
