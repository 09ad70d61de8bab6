// Package tools defines the tools the model may call and their implementations.
//
// Includes:
//   - Name: the closed set of tool identifiers.
//   - Definition: name, description, JSON input schema, handler.
//   - Registry: static lookup table with argument validation.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - search_baidu: fixed search results stub.
//   - get_github_stats: star/fork counts obtained by asking the chat model.
package tools
