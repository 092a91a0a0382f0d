/*
Package observability exposes Prometheus metrics for lattice expansion.

Metrics are registered on a private registry so several pipelines (or
tests) can coexist in one process. Hooks adapts them to the pipeline's
per-entry callbacks.
*/
package observability
