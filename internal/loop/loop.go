package loop

import (
	"context"
	"io"
)

// Run plays a local game on r/w until the player quits.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts ClientOptions) error {
	return NewClient(r, w, opts).Run(ctx)
}
