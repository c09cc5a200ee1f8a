package payroll

// Draft -> Confirmed -> Paid. There is no way back and no cancellation.

// EnsureEditable rejects field updates outside Draft
func (p Payroll) EnsureEditable() error {
	if p.Status != StatusDraft {
		return ErrOnlyDraftUpdatable
	}
	return nil
}

// EnsureDeletable rejects soft delete outside Draft
func (p Payroll) EnsureDeletable() error {
	if p.Status != StatusDraft {
		return ErrOnlyDraftDeletable
	}
	return nil
}

// EnsureItemsEditable rejects item mutations outside Draft
func (p Payroll) EnsureItemsEditable() error {
	if p.Status != StatusDraft {
		return ErrItemsLocked
	}
	return nil
}

// Confirm moves a Draft payroll to Confirmed
func (p *Payroll) Confirm() error {
	if p.Status != StatusDraft {
		return ErrOnlyDraftConfirmable
	}
	p.Status = StatusConfirmed
	return nil
}

// Pay moves a Confirmed payroll to Paid
func (p *Payroll) Pay() error {
	if p.Status != StatusConfirmed {
		return ErrOnlyConfirmedPayable
	}
	p.Status = StatusPaid
	return nil
}
