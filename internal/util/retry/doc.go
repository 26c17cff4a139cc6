// Package retry provides exponential backoff for transient failures and for
// host-driven polling of long-running provider operations.
//
// [Do] retries an operation until it succeeds, returns a [Fatal] error, or the
// attempt budget is spent. [Poll] repeatedly evaluates a condition with the same
// backoff schedule until the condition reports done, used by the provisioning
// runner to wait for an instance to reach a terminal state.
package retry
