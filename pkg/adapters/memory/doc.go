// Package memory provides an in-process session store for development and tests.
package memory
