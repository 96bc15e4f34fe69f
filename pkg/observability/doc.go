/*
Package observability turns engine lifecycle hooks into Prometheus metrics and structured logs.

Both are plain domain.LifecycleHooks values, so they can be combined with Merge and passed to
the engine with WithLifecycleHooks.
*/
package observability
