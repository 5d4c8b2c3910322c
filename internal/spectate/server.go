package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Path is the websocket endpoint.
const Path = "/ws"

// Handler returns a mux serving h at Path.
func Handler(h *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	return mux
}

// Serve accepts spectators on ln until ctx is cancelled, then closes the hub
// and shuts the server down.
func Serve(ctx context.Context, ln net.Listener, h *Hub) error {
	srv := &http.Server{
		Handler:           Handler(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		h.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: %w", err)
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	return nil
}
