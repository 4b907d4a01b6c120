// Package requirements parses the pinned dependency manifest emitted into
// scaffolded projects: comment headers that name groups, exact name==version
// pins, and commented-out optional pins. Versions are checked as semantic
// versions so drift between two manifests can be classified.
package requirements
