// Package event provides the publish/subscribe bus text boxes use to report
// edits and submissions to the rest of the application.
//
// Topics are dot-separated names such as "textbox.text.changed".
// Subscription patterns may use wildcards:
//
//   - "*" matches exactly one segment ("textbox.*.changed")
//   - "**" matches zero or more segments ("textbox.**")
//
// Delivery is synchronous: Publish runs every matching handler on the
// caller's goroutine, in subscription order, before returning. A panicking
// handler is recovered and logged; the remaining handlers still run.
//
// Basic usage:
//
//	bus := event.NewBus()
//	sub := bus.Subscribe("textbox.**", func(ev event.Event) {
//	    fmt.Println(ev.Topic, ev.Payload)
//	})
//	defer bus.Unsubscribe(sub)
//
//	bus.Publish(event.New(event.TopicSubmitted, "box-1", event.Submitted{Text: "hi"}))
package event
