/*
Package dump provides I/O operations for collected states of the Asset
Registry contract deployments.

A dump is a snapshot of the contract state and its storage taken at some
height of a particular chain. Dumps are used to check registry data offline:
Reader gives access to the raw storage and ReadRegistry decodes it into
assets and their indexes which can then be verified with RegistryState.Check.

Dumps are stored in the file system using human-readable encoding.
*/
package dump
