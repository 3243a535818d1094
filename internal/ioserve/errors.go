package ioserve

import (
	"fmt"
	"runtime"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// ListenError is returned when the HTTP API cannot listen on its address.
func ListenError(addr string, err error) error {
	msg := `Cannot start HTTP API on <em>%s</em>

Pick another port with <em>--port</em> or <em>VOCAN_SERVE_PORT</em>.`
	vars := []any{addr}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServeListenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot listen on %s: %w", fn.Name(), addr, err),
	}
}
