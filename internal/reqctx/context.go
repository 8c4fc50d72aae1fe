package reqctx

import "context"

type ctxKey string

const keyRID ctxKey = "rid"

// WithRID stores the request id for log correlation.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns the request id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}
