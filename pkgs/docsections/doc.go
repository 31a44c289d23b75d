// Package docsections extracts man page sections from a function's doc text
// and renders them around the generated usage and help.
//
// Sections are written inline in the doc text:
//
//	#NAME {{{Greet people by name}}}
//
//	#DESCRIPTION
//	{{{
//	Prints a greeting for every name given.
//	}}}
//
// Sections only affect help output, never argument resolution.
package docsections
