package ports

// Mailer delivers a single email with alternative plain and HTML bodies.
// Send reports success as a boolean and never panics or propagates
// transport errors; a disabled or unconfigured mailer reports true.
type Mailer interface {
	Send(to, subject, textBody, htmlBody, replyTo string) bool
}
