package services

// Notifier is the outbound marketing capability. Implementations are
// fire-and-forget: they log failures and never return errors to the
// caller's request path.
type Notifier interface {
	// SendEvent posts a structured conversion event.
	SendEvent(eventName string, customData map[string]interface{})
	// PostProduct publishes a new-product announcement.
	PostProduct(name, description, imageURL string, price float64)
}

// NoopNotifier is used when no marketing credentials are configured.
type NoopNotifier struct{}

func (NoopNotifier) SendEvent(string, map[string]interface{})    {}
func (NoopNotifier) PostProduct(string, string, string, float64) {}
