// Package output provides styled terminal output for tsui5.
//
// # Usage
//
// A Printer writes to the stream it was built with, so commands print to
// their own stdout and stderr and tests capture the lines:
//
//	p := output.New(&buf)
//	p.Created("myapp/src/manifest.json")
//	p.Forced("myapp/tsui5.json")
//	p.Success("Created tsui5 project: myapp")
//
// # Styling
//
//   - Created: green CREATED tag followed by the path
//   - Forced: blue FORCE tag, used for files rewritten in place
//   - Success: green bold
//   - Error: red bold
//   - Info: cyan
//   - Step: indented gray
package output
