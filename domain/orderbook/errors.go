package orderbookdomain

import "fmt"

// InvalidDirectionError represents an error when an order direction is
// neither ask nor bid.
type InvalidDirectionError struct {
	Direction string
}

// Error implements the error interface.
func (e InvalidDirectionError) Error() string {
	return fmt.Sprintf("invalid order direction (%s)", e.Direction)
}

// IsBadRequest marks the error as a client error.
func (e InvalidDirectionError) IsBadRequest() {}
