// Package partners holds the client/vendor directory used as invoice
// counter-parties.
package partners

import (
	"fmt"

	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// PartnerType distinguishes clients from vendors.
type PartnerType string

const (
	TypeClient PartnerType = "CLIENT"
	TypeVendor PartnerType = "VENDOR"
)

// Partner is a client or vendor belonging to one company.
type Partner struct {
	ID        int64
	Name      string
	Type      PartnerType
	CompanyID int64
	Deleted   bool
}

var (
	// ErrPartnerNotFound indicates the referenced client/vendor is absent.
	ErrPartnerNotFound = fmt.Errorf("%w: client/vendor", shared.ErrNotFound)
	// ErrPartnerNameTaken indicates a duplicate client/vendor name.
	ErrPartnerNameTaken = fmt.Errorf("%w: client/vendor name already in use", shared.ErrConflict)
)
