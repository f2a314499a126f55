// Package mq holds the routing keys and JSON payloads of the domain events
// published on the events exchange.
package mq

const (
	RoutingReviewSubmitted = "review.submitted"
	RoutingQuoteRequested  = "quote.requested"
	RoutingContactReceived = "contact.received"
	RoutingProjectCreated  = "project.created"
)
