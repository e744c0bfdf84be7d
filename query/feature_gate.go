package query

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
)

func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string, userID uuid.UUID) (bool, error) {
	if gate == nil {
		return true, nil
	}
	if userID == uuid.Nil {
		return gate.Enabled(ctx, key)
	}
	return gate.Enabled(ctx, key, featuregate.WithScopeSet(featuregate.ScopeSet{
		System: true,
		UserID: userID.String(),
	}))
}
