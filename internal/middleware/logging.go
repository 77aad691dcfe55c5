package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// Getters implemented by api request messages that address a ledger entity.
type (
	groupScoped  interface{ GetGroupId() string }
	memberScoped interface{ GetMemberId() string }
	payerScoped  interface{ GetPayerId() string }
)

// LoggingInterceptor logs each RPC with its caller, the group and member it
// addresses, and its outcome. A nil logger means slog.Default().
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			log := logger
			if log == nil {
				log = slog.Default()
			}
			start := time.Now()

			attrs := []any{"procedure", req.Spec().Procedure}
			if id := GetAccountID(ctx); id != "" {
				attrs = append(attrs, "account_id", id)
			}
			attrs = append(attrs, ledgerAttrs(req.Any())...)

			resp, err := next(ctx, req)

			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
			if err == nil {
				log.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, "code", code.String(), "error", err)
			log.Log(ctx, levelFor(code), "RPC failed", attrs...)
			return resp, err
		}
	}
}

func ledgerAttrs(msg any) []any {
	var attrs []any
	if m, ok := msg.(groupScoped); ok && m.GetGroupId() != "" {
		attrs = append(attrs, "group_id", m.GetGroupId())
	}
	if m, ok := msg.(memberScoped); ok && m.GetMemberId() != "" {
		attrs = append(attrs, "member_id", m.GetMemberId())
	}
	if m, ok := msg.(payerScoped); ok && m.GetPayerId() != "" {
		attrs = append(attrs, "payer_id", m.GetPayerId())
	}
	return attrs
}

// levelFor logs caller mistakes (unknown group, bad split, duplicate member,
// missing token) at warn and server-side failures at error.
func levelFor(code connect.Code) slog.Level {
	switch code {
	case connect.CodeNotFound,
		connect.CodeInvalidArgument,
		connect.CodeAlreadyExists,
		connect.CodeFailedPrecondition,
		connect.CodeUnauthenticated,
		connect.CodePermissionDenied:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
