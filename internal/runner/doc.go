// Package runner drives one query through the chat endpoint, the tools and
// the plotter.
//
// Invariant:
//   - every provider failure is replaced by an apology reply before it reaches
//     the flow; tool and plot failures end the run.
//
// Flow:
//
//	user(text) -> assistant(tool_calls) -> search -> user(follow-up)
//	           -> assistant(tool_calls) -> stats -> plot
package runner
