package controllers

import "mandorpro-backend/services"

var (
	notifier *services.Notifier
	pushPool *services.PushPool
)

// UseServices gives handlers access to the notification services. Either may
// be nil, e.g. in tests or when push keys are not configured.
func UseServices(n *services.Notifier, p *services.PushPool) {
	notifier = n
	pushPool = p
}
