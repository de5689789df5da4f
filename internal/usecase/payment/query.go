package payment

import (
	"context"
	"strconv"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/vnpay"
)

// Transaction status codes reported by the gateway's query API.
var transactionStatus = map[domain.Status]string{
	domain.StatusCompleted: "00",
	domain.StatusPending:   "01",
	domain.StatusFailed:    "02",
	domain.StatusRefunded:  "05",
}

type QueryResult struct {
	Payment         *models.Payment   `json:"payment"`
	GatewayResponse map[string]string `json:"gateway_response"`
}

// Query answers from the local ledger in the shape of a gateway query
// response, signed with the merchant secret.
func (g *Gateway) Query(ctx context.Context, transactionID string) (*QueryResult, error) {
	p, err := g.ledger.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	resp := map[string]string{
		"vnp_ResponseCode":      vnpay.ResponseSuccess,
		"vnp_Message":           "QueryDR Success",
		"vnp_TmnCode":           g.cfg.TmnCode,
		"vnp_TxnRef":            p.TransactionID,
		"vnp_Amount":            strconv.FormatInt(p.Amount*vnpay.AmountFactor, 10),
		"vnp_TransactionStatus": transactionStatus[domain.Status(p.Status)],
		"vnp_TransactionNo":     p.GatewayTransactionNo,
		"vnp_BankCode":          p.Metadata.Data().BankCode,
		"vnp_PayDate":           p.Metadata.Data().PayDate,
	}
	resp[vnpay.ParamSecureHash] = g.hasher.Hash(resp)

	return &QueryResult{Payment: p, GatewayResponse: resp}, nil
}
