/*
Package observability turns flow lifecycle hooks into Prometheus metrics and
structured audit logs.
*/
package observability
