// Package envfile reads the environment-variable example emitted into
// scaffolded projects and compares key sets between two such files.
package envfile
