package helper

import (
	"io"
)

func Close(v any) {
	if v == nil {
		return
	}
	if c, ok := v.(io.Closer); ok {
		_ = c.Close()
	}
}
