package tenancy

import "context"

type ctxKey string

const locationKey ctxKey = "leadflow.location_id"

// WithLocationID stores the CRM location id in context.
func WithLocationID(ctx context.Context, locationID string) context.Context {
	return context.WithValue(ctx, locationKey, locationID)
}

// LocationIDFromContext extracts the location id if present.
func LocationIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(locationKey)
	if val == nil {
		return "", false
	}
	locationID, ok := val.(string)
	return locationID, ok && locationID != ""
}
