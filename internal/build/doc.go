// Package build runs one complete glossary site generation: read the source,
// parse it, build the link table, render every page, write it, and
// optionally verify the links of the result.
//
// Every execution path (the build command, watch mode, tests) goes through
// Service.Run.
package build
