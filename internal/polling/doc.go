// Package polling implements the blocking wait primitive the pipeline uses to
// drive long-running provider jobs to completion.
//
// Wait repeatedly invokes a caller-supplied status check at a fixed interval
// until the job reports a result, reports a terminal failure, or the
// wall-clock budget runs out. Adapter errors raised by the check abort the
// wait immediately; nothing is retried here.
package polling
