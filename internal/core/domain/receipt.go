package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the printable proof of a transaction.
type Receipt struct {
	ReceiptNumber   int64           `json:"receiptNumber"`
	TransactionID   string          `json:"transactionID"`
	MemberCode      string          `json:"memberCode"`
	MemberName      string          `json:"memberName"`
	AccountType     AccountType     `json:"accountType"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	IssuedAt        time.Time       `json:"issuedAt"`
	Body            string          `json:"body"`
}

// RenderReceiptBody produces the plain-text receipt for a transaction.
func RenderReceiptBody(m Member, txn Transaction, issuedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Receipt for transaction %s\n", txn.TransactionID)
	fmt.Fprintf(&b, "Member: %s (%s)\n", m.FullName, m.MemberCode)
	fmt.Fprintf(&b, "Account: %s\n", txn.AccountType)
	fmt.Fprintf(&b, "Type: %s\n", txn.TransactionType)
	fmt.Fprintf(&b, "Amount: %s\n", txn.Amount.StringFixed(CentPlaces))
	fmt.Fprintf(&b, "Balance after: %s\n", txn.BalanceAfter.StringFixed(CentPlaces))
	if txn.ReceiptRef != nil {
		fmt.Fprintf(&b, "Reference: %s\n", *txn.ReceiptRef)
	}
	fmt.Fprintf(&b, "Fiscal year: %d\n", txn.FiscalYear)
	fmt.Fprintf(&b, "Issued: %s\n", issuedAt.UTC().Format(time.RFC3339))
	return b.String()
}

// LiquidationResult summarises an exit liquidation.
type LiquidationResult struct {
	Member       Member          `json:"member"`
	Transactions []Transaction   `json:"transactions"`
	TotalPaidOut decimal.Decimal `json:"totalPaidOut"`
}
