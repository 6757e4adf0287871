package get_availability

import "fmt"

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if err := req.Entity.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.EntityID <= 0 {
		return fmt.Errorf("%w: entity id must be positive, got %d", ErrInvalidInput, req.EntityID)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
