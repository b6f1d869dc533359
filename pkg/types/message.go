// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MessageSource is the capability the engine needs from one inbound alert
// message. The Gmail client satisfies it; tests use in-memory fakes.
type MessageSource interface {
	// ID returns the stable mailbox identifier of the message.
	ID() string

	// Subject returns the message subject line.
	Subject() string

	// Body returns the HTML body of the message.
	Body() string
}
