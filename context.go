package relay

import (
	"context"
	"fmt"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

type contextKey struct {
	key string
}

var (
	CtxKeyID       = contextKey{key: "ctx-key-id"}
	CtxKeySource   = contextKey{key: "ctx-key-source"}
	CtxKeyConfiger = contextKey{key: "ctx-key-configer"}
)

func SetContextLogID(ctx context.Context, id string, source string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyID, id)
	return context.WithValue(ctx, CtxKeySource, source)
}

func Logger(ctx context.Context) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"source": ctx.Value(CtxKeySource),
		"id":     ctx.Value(CtxKeyID),
	})
}

func Configer(ctx context.Context) *koanf.Koanf {
	if v, ok := ctx.Value(CtxKeyConfiger).(*koanf.Koanf); ok {
		return v
	}
	panic("Configer is not in context.")
}

func ConfigUnmarshalWith(ctx context.Context, path string, out any) error {
	if err := Configer(ctx).UnmarshalWithConf(path, out, koanf.UnmarshalConf{Tag: "toml"}); err != nil {
		return fmt.Errorf("config unmarshal %s. %w", path, err)
	}
	return nil
}
