// Package terminal hosts a text box on a tcell screen.
//
// Screen wraps a tcell.Screen and draws a prompt, the scrolled text with its
// selection highlighted, the cursor and a status line. App runs the event
// loop: key events go through the text box bindings, bracketed paste is
// collected and inserted as one piece, mouse clicks and drags place the
// cursor and selection, and functions posted with App.Post run on the loop
// goroutine so the text box is only touched from one goroutine.
package terminal
