package payment

import (
	"context"
	"net/url"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/vnpay"
)

// IPN response codes agreed with the gateway.
const (
	RspSuccess         = "00"
	RspOrderNotFound   = "01"
	RspInvalidMerchant = "03"
	RspInvalidAmount   = "04"
	RspInvalidChecksum = "97"
	RspUnknownError    = "99"
)

var rspMessages = map[string]string{
	RspSuccess:         "Confirm Success",
	RspOrderNotFound:   "Order not found",
	RspInvalidMerchant: "Invalid merchant",
	RspInvalidAmount:   "Invalid amount",
	RspInvalidChecksum: "Invalid signature",
	RspUnknownError:    "Unknown error",
}

type IPNResult struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

type ReturnResult struct {
	Success bool            `json:"success"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message"`
	Payment *models.Payment `json:"payment,omitempty"`
}

// settlement is the outcome of applying one callback.
type settlement struct {
	rsp     string
	code    string
	payment *models.Payment
}

// ======================================================
// RETURN (browser redirect)
// ======================================================

func (g *Gateway) HandleReturn(ctx context.Context, values url.Values) ReturnResult {
	s := g.settle(ctx, values, "return")

	res := ReturnResult{Code: s.code, Payment: s.payment}
	switch {
	case s.rsp != RspSuccess:
		res.Message = httperr.Message(s.code)
	case s.payment != nil && domain.Status(s.payment.Status).Settled():
		res.Success = true
		res.Code = ""
		res.Message = "Payment successful."
	default:
		res.Code = "payment_failed"
		res.Message = httperr.Message(res.Code)
	}
	return res
}

// ======================================================
// IPN (server to server)
// ======================================================

// HandleIPN acknowledges receipt. Any processed outcome, including a failed
// payment or a replay, is answered with 00.
func (g *Gateway) HandleIPN(ctx context.Context, values url.Values) IPNResult {
	s := g.settle(ctx, values, "ipn")
	return IPNResult{RspCode: s.rsp, Message: rspMessages[s.rsp]}
}

// ======================================================
// SETTLE
// ======================================================

func (g *Gateway) settle(ctx context.Context, values url.Values, source string) settlement {
	log := g.log.With(zap.String("source", source), zap.String("txn_ref", values.Get("vnp_TxnRef")))

	cb, perr := vnpay.ParseCallback(values)
	if !g.hasher.Verify(cb.Raw, cb.SecureHash) {
		log.Warn("invalid signature")
		return settlement{rsp: RspInvalidChecksum, code: "invalid_signature"}
	}
	if perr != nil {
		log.Warn("incomplete callback", zap.Error(perr))
	}
	if cb.TxnRef == "" {
		return settlement{rsp: RspOrderNotFound, code: "transaction_not_found"}
	}

	var (
		transitioned bool
		before       booking.Status
		bk           models.Booking
	)

	var p *models.Payment
	err := g.withPaymentLock(ctx, cb.TxnRef, func() error {
		var err error
		p, err = g.ledger.Transition(ctx, cb.TxnRef, func(p *models.Payment, b *models.Booking) (bool, error) {
			if cb.TmnCode != g.cfg.TmnCode {
				return false, httperr.ErrGateway("invalid_merchant")
			}
			if cb.Amount != p.Amount*vnpay.AmountFactor {
				return false, httperr.ErrGateway("invalid_amount")
			}

			target := domain.StatusFailed
			if cb.Succeeded() {
				target = domain.StatusCompleted
			}
			// A payment that cannot move to the outcome has been settled before.
			if domain.CanTransition(domain.Status(p.Status), target) != nil {
				return false, nil
			}

			now := g.clock()
			before = booking.Status(b.Status)

			meta := p.Metadata.Data()
			if cb.BankCode != "" {
				meta.BankCode = cb.BankCode
			}
			meta.CardType = cb.CardType
			meta.PayDate = cb.PayDate
			p.Metadata = datatypes.NewJSONType(meta)
			p.ResponseCode = cb.ResponseCode
			p.GatewayTransactionNo = cb.TransactionNo

			p.Status = string(target)
			if target == domain.StatusCompleted {
				p.PaidAt = &now
				booking.MarkPaid(b, now)
			}

			transitioned = true
			bk = *b
			return true, nil
		})
		return err
	})

	if err != nil {
		be, ok := httperr.As(err)
		switch {
		case ok && be.Code == "payment_not_found":
			log.Warn("unknown transaction")
			return settlement{rsp: RspOrderNotFound, code: "transaction_not_found"}
		case ok && be.Code == "invalid_merchant":
			log.Warn("merchant mismatch", zap.String("tmn_code", cb.TmnCode))
			return settlement{rsp: RspInvalidMerchant, code: be.Code}
		case ok && be.Code == "invalid_amount":
			log.Warn("amount mismatch", zap.Int64("vnp_amount", cb.Amount))
			return settlement{rsp: RspInvalidAmount, code: be.Code}
		default:
			log.Error("settle failed", zap.Error(err))
			return settlement{rsp: RspUnknownError, code: "internal_error"}
		}
	}

	if !transitioned {
		log.Info("callback replay", zap.String("status", p.Status))
		return settlement{rsp: RspSuccess, payment: p}
	}

	log.Info("payment settled", zap.String("status", p.Status), zap.String("response_code", p.ResponseCode))
	g.afterSettle(ctx, p, &bk, before)

	return settlement{rsp: RspSuccess, payment: p}
}

// afterSettle fires the side effects of a real transition, exactly once.
func (g *Gateway) afterSettle(ctx context.Context, p *models.Payment, b *models.Booking, before booking.Status) {
	g.audit.Dispatch(audit.Event{
		BranchID: &b.BranchID,
		UserID:   b.UserID,
		Action:   "payment_" + p.Status,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"txn_ref": p.TransactionID, "response_code": p.ResponseCode},
	})

	name, email := g.contact(ctx, b)

	key := notify.RKPaymentFailed
	if p.Status == string(domain.StatusCompleted) {
		key = notify.RKPaymentCompleted
	}
	g.notify.Dispatch(key, paymentEvent(p, b, name, email))

	if before == booking.StatusPending && booking.Status(b.Status) == booking.StatusConfirmed {
		g.notify.Dispatch(notify.RKBookingConfirmed, notify.BookingEvent{
			BookingID: b.ID,
			Status:    b.Status,
			Date:      b.BookingDate,
			Time:      b.BookingTime,
			Total:     b.TotalAmount,
			Name:      name,
			Email:     email,
		})
	}
}

func (g *Gateway) contact(ctx context.Context, b *models.Booking) (string, string) {
	if b.IsGuest() {
		return b.GuestName, b.GuestEmail
	}
	u, err := g.ledger.GetUser(ctx, *b.UserID)
	if err != nil {
		return "", ""
	}
	return u.Name, u.Email
}
