package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const solWallet = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

func heliusTxn(sig string, failed bool, transfers ...tokenTransfer) enhancedTransaction {
	txn := enhancedTransaction{
		Signature:      sig,
		Timestamp:      1741082400,
		TokenTransfers: transfers,
	}
	if failed {
		txn.TransactionError = &struct {
			Error string `json:"error"`
		}{Error: "InstructionError"}
	}
	return txn
}

func TestHeliusFetchTransfers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/v0/addresses/" + solWallet + "/transactions"
		if r.URL.Path != wantPath {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("expected limit 100, got %q", got)
		}
		if r.URL.Query().Has("before") {
			t.Error("first page must not carry a before cursor")
		}

		json.NewEncoder(w).Encode([]enhancedTransaction{
			heliusTxn("sig1", false,
				tokenTransfer{FromUserAccount: "other", ToUserAccount: solWallet, TokenAmount: 10, Mint: "BONKmint"},
				tokenTransfer{FromUserAccount: solWallet, ToUserAccount: "other", TokenAmount: 3, Mint: "WIFmint"},
			),
			heliusTxn("sig2", true,
				tokenTransfer{FromUserAccount: "other", ToUserAccount: solWallet, TokenAmount: 99, Mint: "BONKmint"},
			),
			heliusTxn("sig3", false,
				tokenTransfer{FromUserAccount: "other", ToUserAccount: solWallet, TokenAmount: 1}, // no mint, native move
			),
		})
	}))
	defer server.Close()

	svc := NewHeliusService("key", server.URL)
	page, err := svc.FetchTransfers(context.Background(), solWallet, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// sig2 failed and sig3 has no mint; only sig1's two movements survive.
	if len(page.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page.Records))
	}
	if page.Records[0].Token != "BONKmint" || page.Records[0].Amount != 10 {
		t.Errorf("unexpected first record %+v", page.Records[0])
	}
	if page.Records[1].TxHash != "sig1" {
		t.Errorf("expected signature carried as tx hash, got %q", page.Records[1].TxHash)
	}
	if page.NextCursor != "" {
		t.Errorf("short page must end the listing, got cursor %q", page.NextCursor)
	}
}

func TestHeliusFetchTransfers_FullPageCursor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("before"); got != "prevSig" {
			t.Errorf("expected before=prevSig, got %q", got)
		}

		txns := make([]enhancedTransaction, pageSize)
		for i := range txns {
			txns[i] = heliusTxn(fmt.Sprintf("sig%d", i), false)
		}
		json.NewEncoder(w).Encode(txns)
	}))
	defer server.Close()

	svc := NewHeliusService("key", server.URL)
	page, err := svc.FetchTransfers(context.Background(), solWallet, "prevSig")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := fmt.Sprintf("sig%d", pageSize-1); page.NextCursor != want {
		t.Errorf("expected cursor %q, got %q", want, page.NextCursor)
	}
}

func TestHeliusFetchTransfers_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewHeliusService("key", server.URL)
	if _, err := svc.FetchTransfers(context.Background(), solWallet, ""); err == nil {
		t.Error("expected error on HTTP 429")
	}
}
