package notificator

import "context"

type Notificator interface {
	// Notify — delivers an upstream failure report to the admin channel.
	Notify(ctx context.Context, err error, details string) error
}
