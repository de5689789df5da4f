package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/lock"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
	"github.com/BruksfildServices01/salon-booking/internal/vnpay"
)

// ======================================================
// CONFIG
// ======================================================

type Config struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

// ======================================================
// GATEWAY
// ======================================================

// Gateway runs the VNPay flow: create a signed redirect, then settle the
// payment from the browser return or the server-to-server IPN.
type Gateway struct {
	ledger  domain.Ledger
	hasher  *vnpay.Hasher
	cfg     Config
	locker  lock.Locker
	lockTTL time.Duration
	clock   timezone.Clock
	audit   *audit.Dispatcher
	notify  *notify.Dispatcher
	log     *zap.Logger
}

func NewGateway(
	ledger domain.Ledger,
	cfg Config,
	locker lock.Locker,
	lockTTL time.Duration,
	clock timezone.Clock,
	auditor *audit.Dispatcher,
	notifier *notify.Dispatcher,
	log *zap.Logger,
) *Gateway {
	return &Gateway{
		ledger:  ledger,
		hasher:  vnpay.NewHasher(cfg.HashSecret),
		cfg:     cfg,
		locker:  locker,
		lockTTL: lockTTL,
		clock:   clock,
		audit:   auditor,
		notify:  notifier,
		log:     log.With(zap.String("usecase", "vnpay")),
	}
}

// ======================================================
// CREATE
// ======================================================

type CreatePaymentInput struct {
	BookingID uint
	Amount    int64
	BankCode  string
	Locale    string
	ClientIP  string
}

type CreatePaymentResult struct {
	URL           string          `json:"payment_url"`
	TransactionID string          `json:"transaction_id"`
	Payment       *models.Payment `json:"payment"`
}

func (g *Gateway) CreateRedirectURL(
	ctx context.Context,
	in CreatePaymentInput,
) (*CreatePaymentResult, error) {

	b, err := g.ledger.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	// The charge must match the booking total snapshot.
	if in.Amount <= 0 || in.Amount != b.TotalAmount {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	if booking.Status(b.Status) == booking.StatusCancelled ||
		booking.PaymentStatus(b.PaymentStatus) != booking.PaymentPending {
		return nil, httperr.ErrBusiness("booking_not_payable")
	}

	created := g.clock().In(timezone.Location(""))
	req := vnpay.PaymentRequest{
		TmnCode:    g.cfg.TmnCode,
		Amount:     in.Amount,
		TxnRef:     TxnRef(b.ID, created),
		OrderInfo:  fmt.Sprintf("Thanh toan dat lich #%d", b.ID),
		Locale:     in.Locale,
		ReturnURL:  g.cfg.ReturnURL,
		IPAddr:     in.ClientIP,
		BankCode:   strings.TrimSpace(in.BankCode),
		CreateDate: created,
		ExpireDate: created.Add(vnpay.ExpireAfter),
	}
	params := req.Params()

	p := &models.Payment{
		BookingID:     b.ID,
		Amount:        in.Amount,
		Currency:      vnpay.CurrencyVND,
		PaymentMethod: domain.MethodVNPay,
		Status:        string(domain.StatusPending),
		TransactionID: req.TxnRef,
		Metadata: datatypes.NewJSONType(models.PaymentMetadata{
			BankCode:   req.BankCode,
			Locale:     params["vnp_Locale"],
			ClientIP:   in.ClientIP,
			OrderInfo:  req.OrderInfo,
			GuestName:  b.GuestName,
			GuestEmail: b.GuestEmail,
			GuestPhone: b.GuestPhone,
		}),
	}

	if err := g.ledger.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	g.log.Info("payment created",
		zap.Uint("booking_id", b.ID),
		zap.String("txn_ref", p.TransactionID),
		zap.Int64("amount", p.Amount),
	)

	g.audit.Dispatch(audit.Event{
		BranchID: &b.BranchID,
		UserID:   b.UserID,
		Action:   "payment_created",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"txn_ref": p.TransactionID, "amount": p.Amount},
	})

	return &CreatePaymentResult{
		URL:           vnpay.BuildURL(g.cfg.PayURL, params, g.hasher),
		TransactionID: p.TransactionID,
		Payment:       p,
	}, nil
}

// TxnRef is unique per attempt so a booking can be paid again after a
// failed or abandoned attempt.
func TxnRef(bookingID uint, at time.Time) string {
	return fmt.Sprintf("%d-%s", bookingID, at.Format(vnpay.DateLayout))
}

func (g *Gateway) withPaymentLock(ctx context.Context, txnRef string, fn func() error) error {
	release, err := g.locker.Acquire(ctx, lock.PaymentKey(txnRef), g.lockTTL)
	if err != nil {
		return fmt.Errorf("payment lock %s: %w", txnRef, err)
	}
	defer release()
	return fn()
}

func paymentEvent(p *models.Payment, b *models.Booking, name, email string) notify.PaymentEvent {
	return notify.PaymentEvent{
		BookingID:     b.ID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Status:        p.Status,
		ResponseCode:  p.ResponseCode,
		Name:          name,
		Email:         email,
	}
}
