package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
)

// receiptService renders and stores plain-text receipts.
type receiptService struct {
	BaseService
	receiptRepo     portsrepo.ReceiptRepositoryFacade
	transactionRepo portsrepo.TransactionReader
	memberRepo      portsrepo.MemberReader
}

// NewReceiptService creates a new receipt generator.
func NewReceiptService(receiptRepo portsrepo.ReceiptRepositoryFacade, transactionRepo portsrepo.TransactionReader, memberRepo portsrepo.MemberReader, options ...ServiceOption) portssvc.ReceiptGenerator {
	return &receiptService{
		BaseService:     newBaseService(options...),
		receiptRepo:     receiptRepo,
		transactionRepo: transactionRepo,
		memberRepo:      memberRepo,
	}
}

var _ portssvc.ReceiptGenerator = (*receiptService)(nil)

// GenerateReceipt issues the receipt of a transaction, or returns the one already issued.
func (s *receiptService) GenerateReceipt(ctx context.Context, transactionID string) (*domain.Receipt, error) {
	existing, err := s.receiptRepo.FindReceiptByTransactionID(ctx, transactionID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s for receipt: %w", transactionID, err)
	}
	member, err := s.memberRepo.FindMemberByID(ctx, txn.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member %s for receipt: %w", txn.MemberID, err)
	}

	issuedAt := s.now()
	receipt, err := s.receiptRepo.SaveReceipt(ctx, domain.Receipt{
		TransactionID:   txn.TransactionID,
		MemberCode:      member.MemberCode,
		MemberName:      member.FullName,
		AccountType:     txn.AccountType,
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		BalanceAfter:    txn.BalanceAfter,
		IssuedAt:        issuedAt,
		Body:            domain.RenderReceiptBody(*member, *txn, issuedAt),
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Receipt issued", slog.Int64("receipt_number", receipt.ReceiptNumber))
	return receipt, nil
}

// GetReceipt retrieves the receipt issued for a transaction.
func (s *receiptService) GetReceipt(ctx context.Context, transactionID string) (*domain.Receipt, error) {
	return s.receiptRepo.FindReceiptByTransactionID(ctx, transactionID)
}
