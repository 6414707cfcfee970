// Package event provides a topic-based publish/subscribe bus for
// designer notifications.
//
// Envelopes carry a hierarchical topic, an arbitrary payload, and
// delivery metadata. Subscribers register topic patterns that may use
// wildcards:
//
//	bus := event.NewBus()
//	bus.Start()
//
//	sub, _ := bus.Subscribe("designer.command.*", func(env event.Envelope) {
//		log.Println(env.Topic, env.Payload)
//	})
//
//	bus.Publish(event.New("designer.command.executed", payload, "history"))
//
// # Delivery
//
// Publish queues the envelope and returns immediately; background
// workers deliver it. A full queue drops the envelope rather than
// blocking the editing path. PublishSync delivers in the caller's
// goroutine and is used by tests and by callers that need ordering
// guarantees against their own subsequent reads.
//
// Handler panics are recovered and counted; one misbehaving subscriber
// cannot take down the bus or starve other subscribers.
package event
