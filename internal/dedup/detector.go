package dedup

import (
	"context"
	"fmt"

	"github.com/nikhilbhatia/smsledger/internal/common"
	"github.com/nikhilbhatia/smsledger/internal/model"
	"github.com/nikhilbhatia/smsledger/internal/service"
)

// Detector checks candidate transactions against previously stored
// fingerprints. The check is advisory: two submissions racing on the
// same fingerprint may both land, and the user resolves the survivor
// later through the duplicate groups listing.
type Detector struct {
	store service.Storage
}

// NewDetector creates a detector backed by the given storage.
func NewDetector(store service.Storage) *Detector {
	return &Detector{store: store}
}

// IsDuplicate reports whether the user already has a transaction with
// this fingerprint. When one exists, the earliest stored transaction is
// returned so callers can reference it.
func (d *Detector) IsDuplicate(ctx context.Context, userID, fingerprint string) (*model.ParsedTransaction, bool, error) {
	existing, err := d.store.FindByFingerprint(ctx, userID, fingerprint)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up fingerprint: %w", err)
	}
	if len(existing) == 0 {
		return nil, false, nil
	}
	return &existing[0], true, nil
}

// FindDuplicateGroups returns the user's stored transactions grouped by
// fingerprint, keeping only groups with more than one member.
func (d *Detector) FindDuplicateGroups(ctx context.Context, userID string) ([]model.DuplicateGroup, error) {
	groups, err := d.store.ListFingerprintGroups(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fingerprint groups: %w", err)
	}

	var duplicates []model.DuplicateGroup
	for _, g := range groups {
		if len(g.Transactions) > 1 {
			duplicates = append(duplicates, g)
		}
	}
	return duplicates, nil
}

// Resolve deletes every member of the group except keepID. Returns
// common.ErrNotFound when keepID is not a member of the group.
func (d *Detector) Resolve(ctx context.Context, group model.DuplicateGroup, keepID string) error {
	if !group.Contains(keepID) {
		return fmt.Errorf("%w: transaction %s is not in duplicate group %s", common.ErrNotFound, keepID, group.Fingerprint)
	}

	for _, txn := range group.Transactions {
		if txn.ID == keepID {
			continue
		}
		if err := d.store.DeleteTransaction(ctx, txn.OwnerUserID, txn.ID); err != nil {
			return fmt.Errorf("failed to delete duplicate %s: %w", txn.ID, err)
		}
	}
	return nil
}
