// Package backpress arbitrates a single back-navigation signal between many
// independently developed features.
//
// Features implement Handler and register at a fixed priority Type. The
// Manager walks registered handlers in Type order and lets the first enabled
// handler consume the event. Three entry points share the same slot table:
//
//   - HandleBackPress: a discrete back press with failure fallthrough and a
//     fallback action at exhaustion.
//   - OnBackStarted / OnBackProgressed / OnBackCancelled / OnBackInvoked: a
//     predictive gesture where one handler is pinned at start and receives
//     every later phase.
//   - HandleEscape: an escape key press which prefers a dedicated escape action
//     and never runs the fallback.
//
// A Manager is not safe for concurrent use. All calls, including the ones
// handlers make back into the Manager from their callbacks, must happen on the
// goroutine that owns the UI event loop.
package backpress
