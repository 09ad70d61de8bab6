// Package memory records what was said during one run.
//
// Persistence model:
//   - Entries are appended in order: user prompts, assistant text, tool calls
//     and tool results.
//   - The transcript is written once, at the end of a run, as indented JSON.
//     Nothing is reloaded into the next run.
package memory
