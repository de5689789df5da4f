package vnpay

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	Version      = "2.1.0"
	CommandPay   = "pay"
	CurrencyVND  = "VND"
	OrderType    = "other"
	DateLayout   = "20060102150405"
	ExpireAfter  = 15 * time.Minute
	AmountFactor = 100

	ResponseSuccess = "00"
)

// PaymentRequest is the outbound parameter set of a pay command.
type PaymentRequest struct {
	TmnCode    string
	Amount     int64
	TxnRef     string
	OrderInfo  string
	Locale     string
	ReturnURL  string
	IPAddr     string
	BankCode   string
	CreateDate time.Time
	ExpireDate time.Time
}

func (r PaymentRequest) Params() map[string]string {
	p := map[string]string{
		"vnp_Version":    Version,
		"vnp_Command":    CommandPay,
		"vnp_TmnCode":    r.TmnCode,
		"vnp_Amount":     strconv.FormatInt(r.Amount*AmountFactor, 10),
		"vnp_CurrCode":   CurrencyVND,
		"vnp_TxnRef":     r.TxnRef,
		"vnp_OrderInfo":  r.OrderInfo,
		"vnp_OrderType":  OrderType,
		"vnp_Locale":     NormalizeLocale(r.Locale),
		"vnp_ReturnUrl":  r.ReturnURL,
		"vnp_IpAddr":     r.IPAddr,
		"vnp_CreateDate": r.CreateDate.Format(DateLayout),
		"vnp_ExpireDate": r.ExpireDate.Format(DateLayout),
	}
	if r.BankCode != "" {
		p["vnp_BankCode"] = r.BankCode
	}
	return p
}

// BuildURL signs params and appends them to the gateway base URL.
func BuildURL(baseURL string, params map[string]string, h *Hasher) string {
	query := Canonical(params)
	return fmt.Sprintf("%s?%s&%s=%s", baseURL, query, ParamSecureHash, h.Hash(params))
}

// NormalizeLocale maps the app's language codes onto the gateway's.
func NormalizeLocale(locale string) string {
	switch locale {
	case "en", "en-US", "en-GB":
		return "en"
	default:
		return "vn"
	}
}

// Callback is the typed view of return/IPN query parameters.
type Callback struct {
	TmnCode           string `validate:"required"`
	Amount            int64  `validate:"gt=0"`
	TxnRef            string `validate:"required"`
	ResponseCode      string `validate:"required"`
	TransactionStatus string
	TransactionNo     string
	BankCode          string
	BankTranNo        string
	CardType          string
	PayDate           string
	OrderInfo         string
	SecureHash        string `validate:"required"`

	Raw map[string]string
}

var validate = validator.New()

// ParseCallback flattens the query into a parameter map and validates the
// fields the payment flow depends on.
func ParseCallback(values url.Values) (Callback, error) {
	raw := make(map[string]string, len(values))
	for k := range values {
		raw[k] = values.Get(k)
	}

	cb := Callback{
		TmnCode:           raw["vnp_TmnCode"],
		TxnRef:            raw["vnp_TxnRef"],
		ResponseCode:      raw["vnp_ResponseCode"],
		TransactionStatus: raw["vnp_TransactionStatus"],
		TransactionNo:     raw["vnp_TransactionNo"],
		BankCode:          raw["vnp_BankCode"],
		BankTranNo:        raw["vnp_BankTranNo"],
		CardType:          raw["vnp_CardType"],
		PayDate:           raw["vnp_PayDate"],
		OrderInfo:         raw["vnp_OrderInfo"],
		SecureHash:        raw[ParamSecureHash],
		Raw:               raw,
	}

	if v := raw["vnp_Amount"]; v != "" {
		amount, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cb, fmt.Errorf("parse vnp_Amount %q: %w", v, err)
		}
		cb.Amount = amount
	}

	if err := validate.Struct(cb); err != nil {
		return cb, err
	}
	return cb, nil
}

// Succeeded reports whether the gateway declared the payment successful.
func (c Callback) Succeeded() bool {
	return c.ResponseCode == ResponseSuccess
}
