// Package plot turns a tools.Stats into a chart.
//
// ScriptPlotter writes a matplotlib script and runs it with a Python
// interpreter; NativePlotter renders the same two-bar chart with gonum/plot.
package plot
