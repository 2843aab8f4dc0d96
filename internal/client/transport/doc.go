// Package transport sends HTTP requests with bounded, exponentially backed
// off retries.
//
// Send is used for idempotent reads: a network error or a failed response
// check is retried up to Config.MaxAttempts times, waiting
// min(BaseDelay*2^(k-1), MaxDelay) between attempt k and k+1, with no
// jitter. SendOnce is used for mutations and makes exactly one attempt.
//
// The transport never looks at payloads. Callers decide what counts as a
// failure through a CheckFunc and may stop the retry loop early by wrapping
// the check error with Permanent.
package transport
