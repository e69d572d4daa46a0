package cache

import (
	"context"

	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/getsentry/sentry-go"
)

// SpanOpCatalogLoad is the Sentry op of a catalog load after a cache miss.
const SpanOpCatalogLoad = "pricing.catalog.load"

// StartMissSpan traces the catalog load that follows a miss on key. It
// returns nil when ctx carries no Sentry hub.
func StartMissSpan(ctx context.Context, entity, key string, ids []string) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	name := "catalog." + entity + ".load"
	span := sentry.StartSpan(ctx, SpanOpCatalogLoad)
	span.Description = name
	span.SetData("entity", entity)
	span.SetData("cache_key", key)
	span.SetData("id_count", len(ids))
	return span
}

// EndMissSpan records the outcome of the load and finishes span. A nil
// span is ignored.
func EndMissSpan(span *sentry.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		if ierr.IsNotFound(err) {
			span.Status = sentry.SpanStatusNotFound
		}
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
