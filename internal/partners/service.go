package partners

import "context"

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	GetByID(ctx context.Context, id int64) (Partner, error)
	ListByCompany(ctx context.Context, companyID int64) ([]Partner, error)
	ListByType(ctx context.Context, companyID int64, partnerType PartnerType) ([]Partner, error)
	ExistsByName(ctx context.Context, companyID int64, name string) (bool, error)
	Insert(ctx context.Context, p Partner) (int64, error)
}

// Service coordinates client/vendor operations.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// FindByID returns one client/vendor.
func (s *Service) FindByID(ctx context.Context, id int64) (Partner, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the company's clients and vendors, optionally filtered by type.
func (s *Service) List(ctx context.Context, companyID int64, partnerType PartnerType) ([]Partner, error) {
	if partnerType == "" {
		return s.repo.ListByCompany(ctx, companyID)
	}
	return s.repo.ListByType(ctx, companyID, partnerType)
}

// Create stores a new client/vendor after a per-company name uniqueness check.
func (s *Service) Create(ctx context.Context, companyID int64, name string, partnerType PartnerType) (Partner, error) {
	taken, err := s.repo.ExistsByName(ctx, companyID, name)
	if err != nil {
		return Partner{}, err
	}
	if taken {
		return Partner{}, ErrPartnerNameTaken
	}
	partner := Partner{Name: name, Type: partnerType, CompanyID: companyID}
	id, err := s.repo.Insert(ctx, partner)
	if err != nil {
		return Partner{}, err
	}
	partner.ID = id
	return partner, nil
}
