package shared

import "context"

type companyContextKey struct{}

// ContextWithCompany stores the caller's company id in context.
func ContextWithCompany(ctx context.Context, companyID int64) context.Context {
	return context.WithValue(ctx, companyContextKey{}, companyID)
}

// CompanyFromContext extracts the caller's company id from context.
func CompanyFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(companyContextKey{}).(int64)
	return id, ok && id > 0
}
