package vnpay

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func sampleParams() map[string]string {
	return map[string]string{
		"vnp_Amount":        "50000000",
		"vnp_BankCode":      "NCB",
		"vnp_OrderInfo":     "Thanh toan booking 123",
		"vnp_ResponseCode":  "00",
		"vnp_TmnCode":       "SALON01",
		"vnp_TxnRef":        "123-20251101100000",
		"vnp_TransactionNo": "14000001",
	}
}

func TestHasher_RoundTrip(t *testing.T) {
	h := NewHasher("secret")
	params := sampleParams()

	hash := h.Hash(params)
	if len(hash) != 128 {
		t.Fatalf("expected 128 hex chars, got %d", len(hash))
	}
	if !h.Verify(params, hash) {
		t.Fatalf("expected verify(hash(p)) to hold")
	}
	if !h.Verify(params, strings.ToUpper(hash)) {
		t.Fatalf("expected case-insensitive compare")
	}
}

func TestHasher_AnySingleChangeAltersHash(t *testing.T) {
	h := NewHasher("secret")
	base := sampleParams()
	original := h.Hash(base)

	seen := map[string]string{original: "original"}
	for k := range base {
		mutated := sampleParams()
		mutated[k] = mutated[k] + "1"

		got := h.Hash(mutated)
		if prev, dup := seen[got]; dup {
			t.Fatalf("changing %s collided with %s", k, prev)
		}
		seen[got] = k

		if h.Verify(mutated, original) {
			t.Fatalf("tampered %s still verifies", k)
		}
	}
}

func TestHasher_IgnoresHashFieldsAndForeignKeys(t *testing.T) {
	h := NewHasher("secret")
	params := sampleParams()
	hash := h.Hash(params)

	params[ParamSecureHash] = hash
	params[ParamSecureHashType] = "HmacSHA512"
	params["utm_source"] = "mail"
	params["vnp_CardType"] = ""

	if !h.Verify(params, hash) {
		t.Fatalf("hash fields, empty values and foreign keys must not be signed")
	}
}

func TestHasher_DifferentSecret(t *testing.T) {
	params := sampleParams()
	if NewHasher("other").Verify(params, NewHasher("secret").Hash(params)) {
		t.Fatalf("expected verify to fail with a different secret")
	}
	if NewHasher("secret").Verify(params, "") {
		t.Fatalf("empty hash must not verify")
	}
}

func TestCanonical_SortsAndEncodes(t *testing.T) {
	got := Canonical(map[string]string{
		"vnp_OrderInfo": "Thanh toan don hang",
		"vnp_Amount":    "100",
		"vnp_ReturnUrl": "https://salon.vn/return?x=1",
	})

	want := "vnp_Amount=100&vnp_OrderInfo=Thanh+toan+don+hang&vnp_ReturnUrl=https%3A%2F%2Fsalon.vn%2Freturn%3Fx%3D1"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildURL_SignedQuery(t *testing.T) {
	h := NewHasher("secret")
	created := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

	req := PaymentRequest{
		TmnCode:    "SALON01",
		Amount:     500000,
		TxnRef:     "123-20251101100000",
		OrderInfo:  "Thanh toan booking 123",
		Locale:     "vi",
		ReturnURL:  "https://salon.vn/return",
		IPAddr:     "127.0.0.1",
		BankCode:   "NCB",
		CreateDate: created,
		ExpireDate: created.Add(ExpireAfter),
	}

	raw := BuildURL("https://sandbox.vnpayment.vn/paymentv2/vpcpay.html", req.Params(), h)
	if !strings.HasPrefix(raw, "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?") {
		t.Fatalf("unexpected url prefix: %s", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	q := u.Query()

	if q.Get("vnp_Amount") != "50000000" {
		t.Fatalf("expected amount x100, got %s", q.Get("vnp_Amount"))
	}
	if q.Get("vnp_Locale") != "vn" {
		t.Fatalf("expected vi to map to vn, got %s", q.Get("vnp_Locale"))
	}
	if q.Get("vnp_ExpireDate") != "20251101101500" {
		t.Fatalf("expected expiry 15 minutes after creation, got %s", q.Get("vnp_ExpireDate"))
	}

	cb, err := ParseCallback(q)
	if err == nil {
		t.Fatalf("outbound query lacks vnp_ResponseCode, expected validation error")
	}
	if !h.Verify(cb.Raw, q.Get(ParamSecureHash)) {
		t.Fatalf("expected the url signature to verify")
	}
}

func TestParseCallback(t *testing.T) {
	h := NewHasher("secret")
	params := sampleParams()
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set(ParamSecureHash, h.Hash(params))

	cb, err := ParseCallback(values)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cb.Amount != 50000000 || cb.TxnRef != "123-20251101100000" || !cb.Succeeded() {
		t.Fatalf("unexpected callback: %+v", cb)
	}

	values.Set("vnp_Amount", "abc")
	if _, err := ParseCallback(values); err == nil {
		t.Fatalf("expected non-numeric amount to fail")
	}
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{"vi": "vn", "": "vn", "vn": "vn", "en": "en"}
	for in, want := range cases {
		if got := NormalizeLocale(in); got != want {
			t.Fatalf("NormalizeLocale(%q) = %q, want %q", in, got, want)
		}
	}
}
