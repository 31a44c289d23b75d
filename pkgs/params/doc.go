// Package params persists the last-used argument values of a function
// between runs.
//
// Each bound function owns one YAML file under the store directory
// (default ~/.params/cliarg/<identity>.par). Values are kept as the raw
// command-line tokens so they go through the same conversion and
// validation as fresh input when they are reused. Writes are
// last-writer-wins; there is no locking.
package params
