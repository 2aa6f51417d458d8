package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/pagination"
	"github.com/timbangcerdas/timbang-api/pkg/weighing"
)

// TransactionService records weighings and reads them back
type TransactionService struct {
	txnRepo repository.TransactionRepository
	loc     *time.Location
	now     func() time.Time
}

// NewTransactionService creates a new transaction service. loc is the zone
// that decides which calendar day a new transaction is dated.
func NewTransactionService(txnRepo repository.TransactionRepository, loc *time.Location) *TransactionService {
	if loc == nil {
		loc = time.Local
	}
	return &TransactionService{
		txnRepo: txnRepo,
		loc:     loc,
		now:     time.Now,
	}
}

// CreateTransactionInput is a weighing as the operator typed it
type CreateTransactionInput struct {
	TransactionDate *time.Time
	ItemType        string
	Raw             weighing.RawInput
	AdminName       string
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	Notes           string
}

// Calculate recomputes the derived values for the raw operator input. It is
// the live preview shown while the form is being filled in.
func (s *TransactionService) Calculate(raw weighing.RawInput) weighing.Totals {
	return weighing.Compute(raw.Parse())
}

// Create validates the input, computes the totals and stores the transaction.
// Nothing is written when validation fails.
func (s *TransactionService) Create(ctx context.Context, user *CurrentUser, input *CreateTransactionInput) (*entity.Transaction, error) {
	if user == nil || user.ID == uuid.Nil {
		return nil, apperror.ErrUnauthorized
	}

	adminName := strings.TrimSpace(input.AdminName)
	if adminName == "" {
		adminName = strings.TrimSpace(user.DisplayName)
	}

	values := input.Raw.Parse()
	totals := weighing.Compute(values)
	if err := validateTransaction(input, adminName, values, totals); err != nil {
		return nil, err
	}

	date := s.now().In(s.loc)
	if input.TransactionDate != nil && !input.TransactionDate.IsZero() {
		date = *input.TransactionDate
	}

	txn := &entity.Transaction{
		ID:               uuid.New(),
		UserID:           user.ID,
		TransactionDate:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		ItemType:         strings.TrimSpace(input.ItemType),
		GrossWeightKg:    values.GrossWeightKg,
		TareWeightKg:     values.TareWeightKg,
		DeductionPercent: values.DeductionPercent,
		DeductionKg:      values.DeductionKg,
		PricePerKg:       values.PricePerKg,
		AdminName:        adminName,
		CustomerName:     strings.TrimSpace(input.CustomerName),
		CustomerAddress:  strings.TrimSpace(input.CustomerAddress),
		CustomerPhone:    strings.TrimSpace(input.CustomerPhone),
		Notes:            strings.TrimSpace(input.Notes),
	}
	txn.ApplyTotals(totals)

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		log.Printf("Failed to save transaction for user %s: %v", user.ID, err)
		return nil, apperror.Wrap(apperror.ErrTransactionSaving, err)
	}
	return txn, nil
}

// Column limits of the text fields.
const (
	maxNameLength  = 255
	maxPhoneLength = 50
)

func tooLong(value string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) > max
}

func validateTransaction(input *CreateTransactionInput, adminName string, values weighing.Input, totals weighing.Totals) error {
	var fieldErrors []apperror.FieldError
	add := func(field, message string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(input.ItemType) == "" {
		add("item_type", "Jenis barang harus diisi")
	}
	weightMissing := false
	for _, field := range input.Raw.Missing() {
		switch field {
		case "gross_weight_kg", "tare_weight_kg":
			if !weightMissing {
				add(field, "Bruto dan Tare harus diisi")
				weightMissing = true
			}
		case "price_per_kg":
			add(field, "Harga per kg harus diisi")
		}
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		add("customer_name", "Nama customer harus diisi")
	}
	if adminName == "" {
		add("admin_name", "Nama admin harus diisi")
	}
	if tooLong(input.ItemType, maxNameLength) {
		add("item_type", "Jenis barang maksimal 255 karakter")
	}
	if tooLong(input.CustomerName, maxNameLength) {
		add("customer_name", "Nama customer maksimal 255 karakter")
	}
	if tooLong(adminName, maxNameLength) {
		add("admin_name", "Nama admin maksimal 255 karakter")
	}
	if tooLong(input.CustomerPhone, maxPhoneLength) {
		add("customer_phone", "No. HP customer maksimal 50 karakter")
	}

	if values.GrossWeightKg < 0 || values.TareWeightKg < 0 || values.DeductionKg < 0 {
		add("weight", "Berat tidak boleh negatif")
	}
	if values.PricePerKg < 0 {
		add("price_per_kg", "Harga per kg tidak boleh negatif")
	}
	if values.DeductionPercent < 0 || values.DeductionPercent > 100 {
		add("deduction_percent", "Pot (%) harus antara 0 dan 100")
	}

	if len(fieldErrors) == 0 && totals.BilledWeightKg <= 0 {
		add("billed_weight_kg", "Total kg tidak valid")
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// ListTransactionsInput narrows the history listing
type ListTransactionsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	ItemType   string
	StartDate  *time.Time
	EndDate    *time.Time
}

// List returns one page of the user's transactions, newest first
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, input *ListTransactionsInput) (*pagination.PaginatedResult[entity.Transaction], error) {
	params := &repository.TransactionFilterParams{
		Pagination: input.Pagination,
		Search:     strings.TrimSpace(input.Search),
		ItemType:   strings.TrimSpace(input.ItemType),
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	txns, total, err := s.txnRepo.List(ctx, userID, params)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, p), nil
}

// Get returns one of the user's transactions
func (s *TransactionService) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaksi")
	}
	return txn, nil
}

// Delete removes one of the user's transactions
func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.txnRepo.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFoundError("Transaksi")
	}
	if err != nil {
		return apperror.Wrap(apperror.ErrStorage, err)
	}
	return nil
}
