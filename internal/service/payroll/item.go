package payroll

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

// PayrollItemServiceImpl edits items while holding a row lock on the owning
// payroll. Item edits leave the payroll totals untouched.
type PayrollItemServiceImpl struct {
	tx          database.Transactor
	payrollRepo payroll.PayrollRepository
	itemRepo    payroll.PayrollItemRepository
}

func NewPayrollItemService(tx database.Transactor, payrollRepo payroll.PayrollRepository, itemRepo payroll.PayrollItemRepository) payroll.PayrollItemService {
	return &PayrollItemServiceImpl{
		tx:          tx,
		payrollRepo: payrollRepo,
		itemRepo:    itemRepo,
	}
}

// ListItems implements payroll.PayrollItemService.
func (s *PayrollItemServiceImpl) ListItems(ctx context.Context, payrollID int64) ([]payroll.PayrollItemResponse, error) {
	if _, err := s.payrollRepo.GetByID(ctx, payrollID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByPayroll(ctx, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll items: %w", err)
	}

	responses := make([]payroll.PayrollItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, payroll.NewPayrollItemResponse(item))
	}
	return responses, nil
}

// lockDraft locks the owning payroll and rejects the edit unless it is Draft
func (s *PayrollItemServiceImpl) lockDraft(ctx context.Context, payrollID int64) error {
	p, err := s.payrollRepo.GetByIDForUpdate(ctx, payrollID)
	if err != nil {
		return err
	}
	return p.EnsureItemsEditable()
}

// ownedItem returns the item when it belongs to payrollID
func (s *PayrollItemServiceImpl) ownedItem(ctx context.Context, payrollID, itemID int64) (payroll.PayrollItem, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return payroll.PayrollItem{}, err
	}
	if item.PayrollID != payrollID {
		return payroll.PayrollItem{}, payroll.ErrPayrollItemNotFound
	}
	return item, nil
}

// CreateItem implements payroll.PayrollItemService.
func (s *PayrollItemServiceImpl) CreateItem(ctx context.Context, req payroll.CreateItemRequest) (payroll.PayrollItemResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollItemResponse{}, err
	}

	var created payroll.PayrollItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockDraft(ctx, req.PayrollID); err != nil {
			return err
		}

		item := payroll.PayrollItem{
			PayrollID: req.PayrollID,
			ItemType:  req.ItemType,
			ItemName:  req.ItemName,
			Amount:    req.Amount,
		}
		if req.SortOrder != nil {
			item.SortOrder = *req.SortOrder
		}

		var err error
		created, err = s.itemRepo.Create(ctx, item)
		return err
	})
	if err != nil {
		return payroll.PayrollItemResponse{}, err
	}

	return payroll.NewPayrollItemResponse(created), nil
}

// UpdateItem implements payroll.PayrollItemService.
func (s *PayrollItemServiceImpl) UpdateItem(ctx context.Context, req payroll.UpdateItemRequest) (payroll.PayrollItemResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollItemResponse{}, err
	}

	var updated payroll.PayrollItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockDraft(ctx, req.PayrollID); err != nil {
			return err
		}
		if _, err := s.ownedItem(ctx, req.PayrollID, req.ID); err != nil {
			return err
		}

		if err := s.itemRepo.Update(ctx, req); err != nil {
			return err
		}

		var err error
		updated, err = s.itemRepo.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		return payroll.PayrollItemResponse{}, err
	}

	return payroll.NewPayrollItemResponse(updated), nil
}

// DeleteItem implements payroll.PayrollItemService.
func (s *PayrollItemServiceImpl) DeleteItem(ctx context.Context, payrollID, itemID int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockDraft(ctx, payrollID); err != nil {
			return err
		}
		if _, err := s.ownedItem(ctx, payrollID, itemID); err != nil {
			return err
		}
		return s.itemRepo.SoftDelete(ctx, itemID)
	})
}
