// Package report renders generated dictionaries and schema drift.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for documentation and sharing
//
// Writers implement the Writer interface, so commands pick the output
// format at run time and write to stdout or a file through the same API.
package report
