package ports

import "context"

// ReceiptPosition summarizes the voter's choice for one position.
type ReceiptPosition struct {
	Name       string
	Abstained  bool
	Candidates []string
}

// VoteReceipt is the confirmation mailed to a voter after a successful cast.
type VoteReceipt struct {
	Email        string
	ElectionName string
	ElectionSlug string
	Positions    []ReceiptPosition
}

// ReceiptMailer delivers vote receipts. Best-effort: callers never fail the
// cast on a mailer error.
type ReceiptMailer interface {
	SendVoteReceipt(ctx context.Context, receipt VoteReceipt) error
}
