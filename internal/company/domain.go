// Package company exposes the tenant directory. Every product, invoice and
// payment in the system belongs to exactly one company, and the company's
// registration timestamp anchors all report date-bucket generation.
package company

import (
	"fmt"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// Company is a tenant of the platform.
type Company struct {
	ID           int64
	Title        string
	RegisteredAt time.Time
}

// ErrCompanyNotFound indicates the referenced company does not exist.
var ErrCompanyNotFound = fmt.Errorf("%w: company", shared.ErrNotFound)
