// Package redis provides a Redis-backed session store and distributed locker
// for running several replicas behind one load balancer.
package redis
