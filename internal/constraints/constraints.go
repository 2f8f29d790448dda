// Package constraints provides constraints for various types.
package constraints

// Byteseq represents a generic UTF-8 text input.
type Byteseq interface {
	~string | ~[]byte
}
