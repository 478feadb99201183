package arena

import (
	"log/slog"

	"github.com/joshuapare/wordarena/internal/backing"
)

// Reserver obtains n bytes of backing storage and a function that releases them.
type Reserver func(n int) ([]byte, func() error, error)

type options struct {
	logger  *slog.Logger
	reserve Reserver
}

// Option configures a Manager.
type Option func(*options)

// WithLogger routes manager logs to l. A nil logger restores the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithReserver replaces the backing-store reservation. The default maps
// anonymous memory where the platform supports it; nil restores it.
func WithReserver(r Reserver) Option {
	return func(o *options) {
		o.reserve = r
	}
}

func defaultOptions() options {
	return options{reserve: backing.Reserve}
}
