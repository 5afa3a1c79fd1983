package domain

import "testing"

func TestWalletSet_CaseInsensitiveMembership(t *testing.T) {
	ws := NewWalletSet("0x742d35Cc6634C0532925a3b844Bc9e7595f2b21D")

	if !ws.Contains("0x742d35cc6634c0532925a3b844bc9e7595f2b21d") {
		t.Error("expected lowercase lookup to match")
	}
	if !ws.Contains("0x742D35CC6634C0532925A3B844BC9E7595F2B21D") {
		t.Error("expected uppercase lookup to match")
	}
	if ws.Contains("0x0000000000000000000000000000000000000001") {
		t.Error("unexpected match for unrelated address")
	}
}

func TestWalletSet_DuplicatesCollapse(t *testing.T) {
	ws := NewWalletSet(
		"0x742d35Cc6634C0532925a3b844Bc9e7595f2b21D",
		"0x742d35cc6634c0532925a3b844bc9e7595f2b21d",
	)

	if len(ws) != 1 {
		t.Errorf("expected 1 logical wallet, got %d", len(ws))
	}
}

func TestWalletSet_NonHexAddresses(t *testing.T) {
	// Solana-style base58 addresses are normalized by lowercasing only.
	ws := NewWalletSet("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")

	if !ws.Contains("9wzdxwbbmkg8ztbnmquxvqrayrzzdsgydlvl9zytawwm") {
		t.Error("expected case-insensitive match for non-hex address")
	}
}
