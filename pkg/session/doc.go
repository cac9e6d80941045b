/*
Package session implements session management and persistence orchestration.

A Manager keeps one live flow.Controller per browser session, rebuilds flows
from a ports.StateStore after a restart, and persists a snapshot after every
state change. Access to a session is serialised with reference-counted local
locks and, when configured, a ports.DistributedLocker shared across replicas.
*/
package session
