package email

// Provider delivers registration-review notifications. Delivery itself is an
// external collaborator; this core only depends on the interface.
type Provider interface {
	SendRegistrationApproved(to, fullName string) error
	SendRegistrationRejected(to, fullName, reason string) error
}

// NoopProvider is used when email is disabled in configuration.
type NoopProvider struct{}

func (NoopProvider) SendRegistrationApproved(to, fullName string) error {
	return nil
}

func (NoopProvider) SendRegistrationRejected(to, fullName, reason string) error {
	return nil
}
