// Package headless replays scripted back navigation scenarios without a
// terminal UI.
//
// A Script declares a set of handlers with queued results and a list of
// steps. Each step drives one manager entry point (back press, gesture
// phase, escape key, enabled change, registry change, system navigation or
// teardown) and may assert on the outcome:
//
//	handlers:
//	  - name: sheet
//	    type: bottom_sheet
//	    results: [failure]
//	  - name: tabs
//	    type: tab_history
//	steps:
//	  - action: back
//	    expect:
//	      handled: true
//	      calls: [sheet.back, tabs.back]
//	      records: ["failure:bottom_sheet", "success:tab_history"]
//
// The Executor builds a fresh manager from the script's arbiter settings,
// runs every step, and produces an ExecutionSummary that the ArtifactWriter
// persists as replay.json and summary.md.
package headless
