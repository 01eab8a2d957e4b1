package llm

import "context"

// callLabels names the lesson or analysis a provider call belongs to.
type callLabels struct {
	purpose    string
	sessionKey string
}

type labelsKey struct{}

func labelsFrom(ctx context.Context) callLabels {
	l, _ := ctx.Value(labelsKey{}).(callLabels)
	return l
}

// WithPurpose labels provider calls made with ctx ("lesson" or "analysis").
func WithPurpose(ctx context.Context, purpose string) context.Context {
	l := labelsFrom(ctx)
	l.purpose = purpose
	return context.WithValue(ctx, labelsKey{}, l)
}

// WithSessionKey ties provider calls made with ctx to a learner session.
func WithSessionKey(ctx context.Context, key string) context.Context {
	l := labelsFrom(ctx)
	l.sessionKey = key
	return context.WithValue(ctx, labelsKey{}, l)
}

// PurposeFrom returns the purpose label, or "unlabeled".
func PurposeFrom(ctx context.Context) string {
	if p := labelsFrom(ctx).purpose; p != "" {
		return p
	}
	return "unlabeled"
}

// SessionKeyFrom returns the session key, or "" outside a session.
func SessionKeyFrom(ctx context.Context) string {
	return labelsFrom(ctx).sessionKey
}
